// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ggin "github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/soutside/bookweb/internal/test/dbcontainer"
	"github.com/soutside/bookweb/pkg/adapter/config"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/routes"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx     context.Context
	DB      *dbcontainer.Container
	Handler http.Handler
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx: ctx,
		DB:  dbcontainer.New(ctx, t, 60*time.Second),
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	ggin.SetMode(ggin.TestMode)
	c, err := config.LoadData(nil, func(key string) (string, bool) {
		switch key {
		case config.EnvDatabaseURL:
			return igts.DB.URL, true
		case config.EnvAdminToken:
			return adminToken, true
		}
		return "", false
	})
	igts.Require().NoError(err, "loading configs")
	err = c.NewSchemaUseCase(igts.DB.Pool).InitDev(igts.Ctx)
	igts.Require().NoError(err, "failed to create schema contents")

	e := gin.New(gin.RequestID(), gin.Recovery(), gin.CORS())
	err = routes.Register(e, igts.DB.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
	igts.Handler = gin.Handler(e)
}

func (igts *IntegrationGinTestSuite) send(
	method, path, body string, admin bool, res any,
) int {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, r)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	w := httptest.NewRecorder()
	igts.Handler.ServeHTTP(w, req)
	igts.NoError(json.Unmarshal(w.Body.Bytes(), res), "body is not json")
	return w.Code
}

func (igts *IntegrationGinTestSuite) TestSeededDrivers() {
	var drivers []map[string]any
	igts.Equal(200, igts.send("GET", "/api/drivers", "", false, &drivers))
	igts.Require().Len(drivers, 3)
	igts.Equal("Marco Vettel", drivers[0]["full_name"])
	igts.Equal(float64(14), drivers[0]["experience_years"])
	igts.Equal(true, drivers[0]["is_active"])
}

func (igts *IntegrationGinTestSuite) TestExperiencesLimit() {
	var rr []map[string]any
	igts.Equal(200, igts.send("GET", "/experiences?limit=2", "", false, &rr))
	igts.Len(rr, 2)
	igts.Equal("Drift Masterclass", rr[0]["name"])
}

func (igts *IntegrationGinTestSuite) TestBookingLifecycle() {
	created := map[string]any{}
	code := igts.send("POST", "/bookings", `{
		"client_name": "Ann Lee",
		"client_email": "ann@mail.example",
		"client_phone": "+1 555 0100",
		"driver_id": "",
		"preferred_track_date": "2030-07-01",
		"preferred_track_time": "10:30"
	}`, false, &created)
	igts.Require().Equal(200, code, "%v", created)
	igts.Equal("pending", created["status"])
	igts.Equal(float64(1), created["participants_count"])
	igts.Equal("", created["notes"])
	igts.Nil(created["driver_id"])
	igts.Equal("2030-07-01", created["preferred_track_date"])
	id := int64(created["id"].(float64))

	updated := map[string]any{}
	code = igts.send("PUT", "/bookings/"+model.ID(id).String(),
		`{"status": "confirmed"}`, true, &updated)
	igts.Equal(200, code)
	igts.Equal("confirmed", updated["status"])
	igts.Equal("", updated["notes"])

	bad := map[string]any{}
	code = igts.send("PUT", "/bookings/"+model.ID(id).String(),
		`{"status": "done"}`, true, &bad)
	igts.Equal(400, code)
	igts.Equal([]any{"status"}, bad["fields"])

	var all []map[string]any
	igts.Equal(200, igts.send("GET", "/bookings", "", false, &all))
	igts.NotEmpty(all)

	ok := map[string]any{}
	code = igts.send("DELETE", "/bookings/"+model.ID(id).String(), "", true, &ok)
	igts.Equal(200, code)
	igts.Equal(map[string]any{"ok": true}, ok)
}

func (igts *IntegrationGinTestSuite) TestReviewModeration() {
	submitted := map[string]any{}
	code := igts.send("POST", "/reviews",
		`{"client_name": "Kim", "rating": 5, "comment": "Wow", "is_approved": true}`,
		false, &submitted)
	igts.Require().Equal(200, code, "%v", submitted)
	igts.Equal(false, submitted["is_approved"])
	id := model.ID(int64(submitted["id"].(float64))).String()

	var before []map[string]any
	igts.Equal(200, igts.send("GET", "/reviews?limit=24", "", false, &before))
	for _, r := range before {
		igts.NotEqual(submitted["id"], r["id"])
	}

	approved := map[string]any{}
	igts.Equal(200, igts.send("PUT", "/reviews/approve/"+id, "", true, &approved))
	igts.Equal(true, approved["is_approved"])

	var after []map[string]any
	igts.Equal(200, igts.send("GET", "/reviews?limit=24", "", false, &after))
	igts.Equal(len(before)+1, len(after))

	missing := map[string]any{}
	igts.Equal(200, igts.send("PUT", "/reviews/approve/999999", "", true, &missing))
	igts.Empty(missing)
}

func (igts *IntegrationGinTestSuite) TestCounts() {
	var tc []model.TableCount
	igts.Equal(200, igts.send("GET", "/_debug/counts", "", false, &tc))
	igts.Require().Len(tc, 4)
	igts.Equal("drivers", tc[0].Table)
	igts.Equal(int64(3), tc[0].Count)
}
