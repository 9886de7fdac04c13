package echoapi

import (
	"bytes"
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/user"
)

const (
	ctxExecKey   = "dbExec"
	ctxObjectKey = "object"
)

// access declares who may call a route: anyone, or authenticated users holding one of roles.
type access struct {
	public bool
	roles  []string
}

var (
	public        = access{public: true}
	authenticated = roles(user.AllRoles...)
	adminOnly     = roles(user.RoleAdmin)
	staff         = roles(user.RoleAdmin, user.RoleTeacher)
	studentOnly   = roles(user.RoleStudent)
)

func roles(rs ...string) access {
	if len(rs) == 0 {
		panic("a private route needs at least one role")
	}
	return access{roles: rs}
}

func (a access) allows(role string) bool {
	for _, r := range a.roles {
		if r == role {
			return true
		}
	}
	return false
}

// router registers every route along with its access declaration.
type router struct {
	group *echo.Group
	auth  *authenticator
}

func (r *router) add(method, path string, acc access, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	if !acc.public {
		m = append([]echo.MiddlewareFunc{r.auth.jwt, r.auth.requireRoles(acc)}, m...)
	}
	r.group.Add(method, path, h, m...)
}

// requireRoles loads the authenticated user and checks their role.
func (a *authenticator) requireRoles(acc access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := a.contextUser(ctx)
			if err != nil {
				return err
			}
			if !acc.allows(usr.Role) {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}

// txMiddleware runs every mutating request in its own transaction, committed when the handler succeeds.
// Reads use the pool. Handlers get the handle with dbExec.
// core.AfterCommit callbacks run after the commit and are dropped on rollback.
func txMiddleware(db core.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch ctx.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				ctx.Set(ctxExecKey, core.DBExecutor(db))
				return next(ctx)
			}

			req := ctx.Request()
			tx, err := db.BeginTx(req.Context(), nil)
			if err != nil {
				return errors.Wrap(err, "beginning transaction")
			}
			ctx.Set(ctxExecKey, core.DBExecutor(tx))
			hookCtx, hooks := core.WithCommitHooks(req.Context())
			ctx.SetRequest(req.WithContext(hookCtx))

			// hold the response back until the transaction is committed
			res := ctx.Response()
			origWriter := res.Writer
			bw := &bufferedWriter{ResponseWriter: origWriter}
			res.Writer = bw

			err = next(ctx)
			res.Writer = origWriter
			if err != nil {
				_ = tx.Rollback()
				resetResponse(res)
				return err
			}
			if err = tx.Commit(); err != nil {
				resetResponse(res)
				return errors.Wrap(err, "committing transaction")
			}
			hooks.Run()
			return bw.flush()
		}
	}
}

type bufferedWriter struct {
	http.ResponseWriter
	code int
	buf  bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) { w.code = code }

func (w *bufferedWriter) Write(b []byte) (int, error) { return w.buf.Write(b) }

func (w *bufferedWriter) flush() error {
	if w.code == 0 && w.buf.Len() == 0 {
		return nil
	}
	if w.code == 0 {
		w.code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(w.code)
	_, err := w.ResponseWriter.Write(w.buf.Bytes())
	return err
}

func resetResponse(res *echo.Response) {
	res.Committed = false
	res.Status = http.StatusOK
	res.Size = 0
}

// dbExec returns the request-scoped database handle set by txMiddleware.
func dbExec(ctx echo.Context) core.DBExecutor {
	exec, _ := ctx.Get(ctxExecKey).(core.DBExecutor)
	return exec
}

func metricsMiddleware(reg prometheus.Registerer, translator ut.Translator) echo.MiddlewareFunc {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studysphere_http_requests_total",
		Help: "Number of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})
	reg.MustRegister(requests)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)
			code := ctx.Response().Status
			if err != nil {
				code, _ = resolveError(err, translator)
			}
			requests.WithLabelValues(ctx.Request().Method, ctx.Path(), strconv.Itoa(code)).Inc()
			return err
		}
	}
}

// paramID returns the integer `:id` path parameter. Anything else cannot match a row.
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHTTPNotFound
	}
	return id, nil
}
