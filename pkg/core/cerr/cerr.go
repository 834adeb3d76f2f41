// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr defines the errors which the use cases return when the
// failure has a meaning for the client, so adapters can classify them
// without depending on the repositories details.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrForbidden is reported when an admin-only operation is attempted
// without a matching admin token. Clients get no further detail.
var ErrForbidden = errors.New("Forbidden")

// ErrInvalidJSON is reported when a request body is not a JSON object.
var ErrInvalidJSON = errors.New("Invalid JSON")

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Forbidden returns the admin gate rejection error.
func Forbidden() *Error {
	return Authorization(ErrForbidden)
}

// ValidationError lists the names of request fields which were
// missing or malformed. Names keep the order of the entity fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// Add appends name to e unless it was added before.
func (e *ValidationError) Add(name string) {
	for _, f := range e.Fields {
		if f == name {
			return
		}
	}
	e.Fields = append(e.Fields, name)
}

// Err returns e as an error if any field was added, and nil otherwise.
// A nil *ValidationError must not be returned as an error interface.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
