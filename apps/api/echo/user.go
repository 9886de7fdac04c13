package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/user"
)

type userApi struct {
	auth     *authenticator
	svc      *user.Service
	validate *validator.Validate
}

func registerUserAPI(r *router, deps *Deps) {
	api := userApi{
		auth:     r.auth,
		svc:      deps.UserSvc,
		validate: deps.Validate,
	}

	// registering an Admin needs an Admin token, anything else is open
	r.add(http.MethodPost, "/users", public, api.create, r.auth.optionalJWT)
	r.add(http.MethodGet, "/users", adminOnly, api.query)

	r.add(http.MethodGet, "/users/:id", authenticated, api.retrieve, api.selfOrAdmin)
	r.add(http.MethodPut, "/users/:id", authenticated, api.update, api.selfOrAdmin)
	r.add(http.MethodDelete, "/users/:id", adminOnly, api.destroy, api.selfOrAdmin)
}

// Handlers

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if data.Role == user.RoleAdmin {
		if _, ok := api.auth.contextClaims(ctx); !ok {
			return errHTTPForbidden
		}
		ctxUsr, err := api.auth.contextUser(ctx)
		if err != nil {
			return err
		}
		if !ctxUsr.IsAdmin() {
			return errHTTPForbidden
		}
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(users), "users": users})
}

func (api *userApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ctx.Get(ctxObjectKey).(user.User))
}

func (api *userApi) update(ctx echo.Context) error {
	usr := ctx.Get(ctxObjectKey).(user.User)

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}

	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	if err = data.Validate(usr, api.validate); err != nil {
		return err
	}
	// only admins change roles
	if data.Role != usr.Role && !ctxUsr.IsAdmin() {
		return errHTTPForbidden
	}

	usr, err = api.svc.Update(ctx.Request().Context(), usr, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	usr := ctx.Get(ctxObjectKey).(user.User)

	// Say No to Suicide! ctxUser cannot delete themselves
	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	if usr.ID == ctxUsr.ID {
		return errHTTPForbidden
	}

	if err = api.svc.Delete(ctx.Request().Context(), usr.ID, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// selfOrAdmin loads the user at `/:id` when it is the context user or the context user is an Admin.
// Anyone else gets a 404.
func (api *userApi) selfOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctxUsr, err := api.auth.contextUser(ctx)
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil || !(id == ctxUsr.ID || ctxUsr.IsAdmin()) {
			return errHTTPNotFound
		}
		usr, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
		if err != nil {
			return errors.Wrap(err, "finding user by ID")
		}
		ctx.Set(ctxObjectKey, usr)
		return next(ctx)
	}
}
