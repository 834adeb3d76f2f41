// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the request deserialization and the error
// serialization helpers which are shared by all resource packages.
package serdser

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/log"
	"github.com/soutside/bookweb/pkg/core/model"
)

// ValidationFailed is the error message of 400 validation responses.
const ValidationFailed = "Validation failed"

// BindRecord reads the request body as a record. In case of failure,
// the error response is written and false is returned.
func BindRecord(c *gin.Context) (model.Record, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		SerErr(c, cerr.BadRequest(cerr.ErrInvalidJSON))
		return nil, false
	}
	r, err := ParseRecord(body)
	if err != nil {
		SerErr(c, err)
		return nil, false
	}
	return r, true
}

// ParseRecord decodes body as one JSON object. An empty body is an
// empty record. Numbers are decoded as int64 when they are integral
// and as float64 otherwise. Nested objects and arrays are kept as
// decoded, so they fail the field type checks later.
func ParseRecord(body []byte) (model.Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return model.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, cerr.BadRequest(cerr.ErrInvalidJSON)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, cerr.BadRequest(cerr.ErrInvalidJSON)
	}
	r := make(model.Record, len(raw))
	for k, v := range raw {
		r[k] = number(v)
	}
	return r, nil
}

func number(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return string(n)
}

// BindID parses the id path parameter. In case of failure, a 400
// error response is written and false is returned.
func BindID(c *gin.Context) (model.ID, bool) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		SerErr(c, cerr.BadRequest(err))
		return 0, false
	}
	return id, true
}

// SerErr writes err as the JSON error response. Validation errors
// list the offending fields, classified errors use their own status
// code, and other errors are logged and reported with 500 carrying the
// message of their innermost wrapped error.
func SerErr(c *gin.Context, err error) {
	var verr *cerr.ValidationError
	var ce *cerr.Error
	switch {
	case errors.As(err, &verr):
		log.Debug(c, "validation failed", log.Strings("fields", verr.Fields))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  ValidationFailed,
			"fields": verr.Fields,
		})
	case errors.As(err, &ce):
		c.JSON(ce.HTTPStatusCode, gin.H{
			"error": ce.Err.Error(),
		})
	default:
		log.Error(c, "request failed", log.Err("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": innermost(err).Error(),
		})
	}
}

// innermost follows the single error wrap chain of err, so the client
// gets the driver message without the use case and repository context.
func innermost(err error) error {
	for {
		u := errors.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
}

// SerRecord writes r with 200. A nil (or empty) record, such as the
// result of updating a missing row, is written as an empty object.
func SerRecord(c *gin.Context, r model.Record) {
	if r == nil {
		r = model.Record{}
	}
	c.JSON(http.StatusOK, r)
}

// SerRecords writes rr with 200. A nil list is written as an empty
// array.
func SerRecords(c *gin.Context, rr []model.Record) {
	if rr == nil {
		rr = []model.Record{}
	}
	c.JSON(http.StatusOK, rr)
}

// SerOK writes the {"ok":true} response of operations which return no
// row, such as deletions.
func SerOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
