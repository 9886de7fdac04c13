package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/student"
)

// profileApi serves the Student record owned by the authenticated user.
type profileApi struct {
	auth     *authenticator
	svc      *student.Service
	validate *validator.Validate
}

func registerProfileAPI(r *router, deps *Deps) {
	api := profileApi{auth: r.auth, svc: deps.StudentSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/profiles", studentOnly, api.retrieve, api.loadOwnStudent)
	r.add(http.MethodPut, "/profiles", studentOnly, api.update, api.loadOwnStudent)
	r.add(http.MethodDelete, "/profiles", studentOnly, api.destroy, api.loadOwnStudent)
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ctx.Get(ctxObjectKey).(student.Student))
}

func (api *profileApi) update(ctx echo.Context) error {
	s := ctx.Get(ctxObjectKey).(student.Student)

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	// students may not move their record to another user or course
	data.UserID, data.CourseID = 0, 0
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Update(ctx.Request().Context(), s.ID, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating own student record")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *profileApi) destroy(ctx echo.Context) error {
	s := ctx.Get(ctxObjectKey).(student.Student)
	if err := api.svc.Delete(ctx.Request().Context(), s.ID, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting own student record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *profileApi) loadOwnStudent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctxUsr, err := api.auth.contextUser(ctx)
		if err != nil {
			return err
		}
		s, err := api.svc.GetByUserID(ctx.Request().Context(), ctxUsr.ID, dbExec(ctx))
		if err != nil {
			return errors.Wrap(err, "finding own student record")
		}
		ctx.Set(ctxObjectKey, s)
		return next(ctx)
	}
}
