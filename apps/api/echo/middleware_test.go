package echoapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/user"
	boiledrepos "github.com/trezcool/studysphere/storage/database/sqlboiler"
	"github.com/trezcool/studysphere/testutil"
)

func Test_roles(t *testing.T) {
	assert.Panics(t, func() { roles() })

	assert.True(t, staff.allows(user.RoleTeacher))
	assert.False(t, staff.allows(user.RoleStudent))
	assert.False(t, public.allows(user.RoleAdmin))
	for _, r := range user.AllRoles {
		assert.True(t, authenticated.allows(r), r)
	}
}

func Test_txMiddleware(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	repo := boiledrepos.NewUserRepository(env.db)

	createUser := func(ctx echo.Context, email string) error {
		_, err := boiledrepos.NewUserRepository(dbExec(ctx)).CreateUser(ctx.Request().Context(), user.User{
			Email: email, Role: user.RoleStudent, PasswordHash: []byte("x"),
		})
		return err
	}
	env.srv.app.POST("/test/commit", func(ctx echo.Context) error {
		if err := createUser(ctx, "kept@test.cd"); err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, echo.Map{"ok": true})
	})
	env.srv.app.POST("/test/rollback", func(ctx echo.Context) error {
		if err := createUser(ctx, "dropped@test.cd"); err != nil {
			return err
		}
		return errors.New("boom")
	})
	env.srv.app.POST("/test/half-written", func(ctx echo.Context) error {
		if err := createUser(ctx, "half@test.cd"); err != nil {
			return err
		}
		_ = ctx.JSON(http.StatusOK, echo.Map{"ok": true})
		return errors.New("boom after write")
	})

	var committed []string
	env.srv.app.POST("/test/hook-commit", func(ctx echo.Context) error {
		core.AfterCommit(ctx.Request().Context(), func() { committed = append(committed, "commit") })
		return ctx.NoContent(http.StatusNoContent)
	})
	env.srv.app.POST("/test/hook-rollback", func(ctx echo.Context) error {
		core.AfterCommit(ctx.Request().Context(), func() { committed = append(committed, "rollback") })
		return errors.New("boom")
	})

	internal := errBody(t, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	env.runTests([]httpTest{
		{name: "commit", method: http.MethodPost, path: "/test/commit", wantCode: http.StatusCreated, wantData: []byte(`{"ok":true}`)},
		{name: "rollback", method: http.MethodPost, path: "/test/rollback", wantCode: http.StatusInternalServerError, wantData: internal},
		{name: "response held back", method: http.MethodPost, path: "/test/half-written", wantCode: http.StatusInternalServerError, wantData: internal},
		{name: "hook after commit", method: http.MethodPost, path: "/test/hook-commit", wantCode: http.StatusNoContent, wantData: []byte{}},
		{name: "hook dropped on rollback", method: http.MethodPost, path: "/test/hook-rollback", wantCode: http.StatusInternalServerError, wantData: internal},
	})
	assert.Equal(t, []string{"commit"}, committed)

	_, err := repo.GetUserByEmail(ctx, "kept@test.cd")
	assert.NoError(t, err)
	_, err = repo.GetUserByEmail(ctx, "dropped@test.cd")
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = repo.GetUserByEmail(ctx, "half@test.cd")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func Test_metricsMiddleware(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.db, user.RoleAdmin)

	env.run(httpTest{path: "/"})
	env.run(httpTest{path: "/users"})
	env.run(httpTest{path: "/users", token: env.token(admin)})
	env.run(httpTest{path: "/users", token: env.token(admin)})

	count, err := promtestutil.GatherAndCount(env.reg, "studysphere_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count) // one series per method, route and code

	families, err := env.reg.Gather()
	require.NoError(t, err)
	got := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			got[labels["route"]+" "+labels["code"]] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"/ 200": 1, "/users 401": 1, "/users 200": 2}, got)
}

func Test_home(t *testing.T) {
	env := setup(t)
	env.runTests([]httpTest{
		{name: "welcome", path: "/", wantData: []byte(`{"message":"Welcome to Study Sphere App"}`)},
		{name: "trailing slash", path: "/courses/", wantCode: http.StatusUnauthorized},
		{name: "unknown route", path: "/lol", wantCode: http.StatusNotFound},
	})
}
