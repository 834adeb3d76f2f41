// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	ggin "github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/soutside/bookweb/internal/test/dbmock"
	"github.com/soutside/bookweb/pkg/adapter/config"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/routes"
	"github.com/stretchr/testify/suite"
)

const adminToken = "t0ken"

type RouterTestSuite struct {
	suite.Suite

	Mock    sqlmock.Sqlmock
	Handler http.Handler
}

func TestRouterTestSuite(t *testing.T) {
	ggin.SetMode(ggin.TestMode)
	suite.Run(t, &RouterTestSuite{})
}

func (rts *RouterTestSuite) SetupTest() {
	pool, mock := dbmock.New(rts.T())
	c, err := config.LoadData(nil, func(key string) (string, bool) {
		switch key {
		case config.EnvDatabaseURL:
			return "postgres://mock/db", true
		case config.EnvAdminToken:
			return adminToken, true
		}
		return "", false
	})
	rts.Require().NoError(err, "loading configs")
	e := gin.New(gin.RequestID(), gin.Recovery(), gin.CORS())
	e.GET("/boom", func(*ggin.Context) { panic("kaboom") })
	rts.Require().NoError(routes.Register(e, pool, c))
	rts.Mock, rts.Handler = mock, gin.Handler(e)
}

// send serves one request and decodes its JSON response into res.
func (rts *RouterTestSuite) send(
	method, path, body string, admin bool, res any,
) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	w := httptest.NewRecorder()
	rts.Handler.ServeHTTP(w, req)
	if res != nil {
		rts.NoError(json.Unmarshal(w.Body.Bytes(), res), "body is not json")
	}
	return w
}

func (rts *RouterTestSuite) TestHealthWithApiPrefix() {
	for _, p := range []string{"/health", "/api/health", "/api/health/"} {
		res := map[string]any{}
		w := rts.send(http.MethodGet, p, "", false, &res)
		rts.Equal(http.StatusOK, w.Code, p)
		rts.Equal(map[string]any{
			"ok": true, "service": "supercar-experience",
		}, res, p)
		rts.NotEmpty(w.Header().Get(gin.RequestIDHeader))
	}
}

func (rts *RouterTestSuite) TestNotFound() {
	res := map[string]any{}
	w := rts.send(http.MethodGet, "/api/nope/", "", false, &res)
	rts.Equal(http.StatusNotFound, w.Code)
	rts.Equal(map[string]any{"error": "Not found", "path": "/nope"}, res)

	res = map[string]any{}
	w = rts.send(http.MethodPatch, "/drivers/1", "", true, &res)
	rts.Equal(http.StatusNotFound, w.Code)
}

func (rts *RouterTestSuite) TestOptions() {
	res := map[string]any{}
	w := rts.send(http.MethodOptions, "/api/whatever", "", false, &res)
	rts.Equal(http.StatusOK, w.Code)
	rts.Equal(map[string]any{"ok": true}, res)

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://site.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w = httptest.NewRecorder()
	rts.Handler.ServeHTTP(w, req)
	rts.Equal(http.StatusOK, w.Code)
	rts.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	rts.Contains(w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func (rts *RouterTestSuite) TestCORSHeadersWithoutOrigin() {
	for _, path := range []string{"/api/health", "/missing"} {
		w := rts.send(http.MethodGet, path, "", false, &map[string]any{})
		h := w.Header()
		rts.Equal("*", h.Get("Access-Control-Allow-Origin"), path)
		rts.Equal("GET, POST, PUT, DELETE, OPTIONS",
			h.Get("Access-Control-Allow-Methods"), path)
		rts.Equal("Content-Type, Authorization",
			h.Get("Access-Control-Allow-Headers"), path)
	}
}

func (rts *RouterTestSuite) TestAdminRoutesNeedToken() {
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/drivers"},
		{http.MethodPut, "/api/drivers/1"},
		{http.MethodDelete, "/experiences/1"},
		{http.MethodPut, "/reviews/approve/1"},
		{http.MethodDelete, "/reviews/1"},
		{http.MethodPut, "/bookings/1"},
		{http.MethodDelete, "/bookings/1"},
	} {
		res := map[string]any{}
		w := rts.send(tc.method, tc.path, "{bad json", false, &res)
		rts.Equal(http.StatusForbidden, w.Code, tc.path)
		rts.Equal(map[string]any{"error": "Forbidden"}, res, tc.path)
	}
	req := httptest.NewRequest(http.MethodPost, "/drivers", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	rts.Handler.ServeHTTP(w, req)
	rts.Equal(http.StatusForbidden, w.Code)
}

func (rts *RouterTestSuite) TestInvalidID() {
	res := map[string]any{}
	w := rts.send(http.MethodPut, "/drivers/abc", "{}", true, &res)
	rts.Equal(http.StatusBadRequest, w.Code)
	rts.Equal(map[string]any{"error": "invalid id"}, res)
}

func (rts *RouterTestSuite) TestInvalidJSON() {
	for _, body := range []string{"{", "[1,2]", "null", `{"a":1} {}`} {
		res := map[string]any{}
		w := rts.send(http.MethodPost, "/bookings", body, false, &res)
		rts.Equal(http.StatusBadRequest, w.Code, body)
		rts.Equal(map[string]any{"error": "Invalid JSON"}, res, body)
	}
}

func (rts *RouterTestSuite) TestBookingValidation() {
	res := struct {
		Error  string
		Fields []string
	}{}
	w := rts.send(http.MethodPost, "/bookings", "", false, &res)
	rts.Equal(http.StatusBadRequest, w.Code)
	rts.Equal("Validation failed", res.Error)
	rts.Equal([]string{
		"client_name", "client_email", "client_phone",
		"preferred_track_date", "preferred_track_time",
	}, res.Fields)
}

func (rts *RouterTestSuite) TestBookingValidationKeepsFieldsOrder() {
	res := struct {
		Error  string
		Fields []string
	}{}
	body := `{
		"client_phone": 5550100,
		"client_email": "ann@example.com",
		"preferred_track_date": "2024-05-01",
		"preferred_track_time": "10:30",
		"colour": "red"
	}`
	w := rts.send(http.MethodPost, "/bookings", body, false, &res)
	rts.Equal(http.StatusBadRequest, w.Code)
	rts.Equal([]string{"client_name", "client_phone", "colour"}, res.Fields)
}

func (rts *RouterTestSuite) TestCreateBooking() {
	rts.Mock.ExpectQuery(`INSERT INTO "bookings" ("client_name",`+
		` "client_email", "client_phone", "driver_id", "experience_id",`+
		` "preferred_track_date", "preferred_track_time",`+
		` "participants_count", "notes", "status")`+
		` VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING *`).
		WithArgs("Ann Lee", "ann@mail.example", "+1 555 0100", nil,
			int64(2), "2024-07-01", "10:00", int64(1), "", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(int64(31), "pending"))
	res := map[string]any{}
	w := rts.send(http.MethodPost, "/api/bookings", `{
		"client_name": "Ann Lee",
		"client_email": "ann@mail.example",
		"client_phone": "+1 555 0100",
		"driver_id": "",
		"experience_id": 2,
		"preferred_track_date": "2024-07-01",
		"preferred_track_time": "10:00",
		"participants_count": "lots",
		"id": 5
	}`, false, &res)
	rts.Equal(http.StatusOK, w.Code)
	rts.Equal(map[string]any{"id": float64(31), "status": "pending"}, res)
}

func (rts *RouterTestSuite) TestListReviewsClampsLimit() {
	rts.Mock.ExpectQuery(`SELECT * FROM "thrill_reviews"` +
		` WHERE "is_approved" = true ORDER BY "created_at" DESC LIMIT $1`).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	var res []any
	w := rts.send(http.MethodGet, "/reviews?limit=100", "", false, &res)
	rts.Equal(http.StatusOK, w.Code)
	rts.Equal("[]", w.Body.String())
}

func (rts *RouterTestSuite) TestApproveMissingReview() {
	rts.Mock.ExpectQuery(`UPDATE "thrill_reviews" SET`+
		` "is_approved" = COALESCE($1, "is_approved")`+
		` WHERE id = $2 RETURNING *`).
		WithArgs(true, int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	res := map[string]any{}
	w := rts.send(http.MethodPut, "/reviews/approve/9", "", true, &res)
	rts.Equal(http.StatusOK, w.Code)
	rts.Empty(res)
}

func (rts *RouterTestSuite) TestDeleteDriver() {
	rts.Mock.ExpectExec(`DELETE FROM "drivers" WHERE id = $1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	res := map[string]any{}
	w := rts.send(http.MethodDelete, "/drivers/3", "", true, &res)
	rts.Equal(http.StatusOK, w.Code)
	rts.Equal(map[string]any{"ok": true}, res)
}

func (rts *RouterTestSuite) TestDatabaseErrorIsReported() {
	rts.Mock.ExpectQuery(`SELECT * FROM "drivers" WHERE "is_active" = true` +
		` ORDER BY "experience_years" DESC`).
		WillReturnError(errors.New("db is down"))
	res := map[string]string{}
	w := rts.send(http.MethodGet, "/drivers", "", false, &res)
	rts.Equal(http.StatusInternalServerError, w.Code)
	rts.Equal("db is down", res["error"])
}

func (rts *RouterTestSuite) TestPanicIsRecovered() {
	res := map[string]string{}
	w := rts.send(http.MethodGet, "/boom", "", false, &res)
	rts.Equal(http.StatusInternalServerError, w.Code)
	rts.Equal("kaboom", res["error"])
}

func TestNormalizePath(t *testing.T) {
	for in, expected := range map[string]string{
		"":                "/",
		"/":               "/",
		"///":             "/",
		"/api":            "/",
		"/api/":           "/",
		"/api/drivers":    "/drivers",
		"/api/drivers//":  "/drivers",
		"/drivers/":       "/drivers",
		"/apis":           "/apis",
		"/api/api/health": "/api/health",
	} {
		if got := gin.NormalizePath(in); got != expected {
			t.Errorf("NormalizePath(%q) = %q, expected %q", in, got, expected)
		}
	}
}
