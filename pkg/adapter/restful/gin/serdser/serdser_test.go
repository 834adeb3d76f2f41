// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/serdser"
	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	r, err := serdser.ParseRecord([]byte(" \n"))
	require.NoError(t, err)
	assert.Equal(t, model.Record{}, r)

	r, err = serdser.ParseRecord([]byte(`{
		"a": 1, "b": 2.5, "c": "x", "d": null, "e": true,
		"f": 12345678901234567, "g": [1], "h": {"k": 1}
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), r["a"])
	assert.Equal(t, 2.5, r["b"])
	assert.Equal(t, "x", r["c"])
	assert.Nil(t, r["d"])
	assert.True(t, r.Has("d"))
	assert.Equal(t, true, r["e"])
	assert.Equal(t, int64(12345678901234567), r["f"])
	assert.IsType(t, []any{}, r["g"])
	assert.IsType(t, map[string]any{}, r["h"])

	for _, body := range []string{"{", "[]", "null", "42", `{} x`} {
		_, err := serdser.ParseRecord([]byte(body))
		assert.ErrorIs(t, err, cerr.ErrInvalidJSON, body)
	}
}

func TestSerErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		err  error
		code int
		body string
	}{
		{
			err:  fmt.Errorf("wrapped: %w", &cerr.ValidationError{Fields: []string{"a", "b"}}),
			code: http.StatusBadRequest,
			body: `{"error":"Validation failed","fields":["a","b"]}`,
		},
		{
			err:  fmt.Errorf("gate: %w", cerr.Forbidden()),
			code: http.StatusForbidden,
			body: `{"error":"Forbidden"}`,
		},
		{
			err:  cerr.BadRequest(model.ErrInvalidID),
			code: http.StatusBadRequest,
			body: `{"error":"invalid id"}`,
		},
		{
			err:  errors.New("relation does not exist"),
			code: http.StatusInternalServerError,
			body: `{"error":"relation does not exist"}`,
		},
		{
			err: fmt.Errorf("listing drivers: %w",
				fmt.Errorf("select: %w", errors.New(`relation "drivers" does not exist`)),
			),
			code: http.StatusInternalServerError,
			body: `{"error":"relation \"drivers\" does not exist"}`,
		},
		{
			err:  errors.Join(errors.New("a"), errors.New("b")),
			code: http.StatusInternalServerError,
			body: `{"error":"a\nb"}`,
		},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		serdser.SerErr(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String(), tc.err.Error())
	}
}

func TestSerRecordAndRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	serdser.SerRecord(c, nil)
	assert.Equal(t, "{}", w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	serdser.SerRecords(c, nil)
	assert.Equal(t, "[]", w.Body.String())
}
