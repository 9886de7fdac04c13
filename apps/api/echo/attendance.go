package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(r *router, deps *Deps) {
	api := attendanceApi{svc: deps.AttendanceSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/attendances", staff, api.query)
	r.add(http.MethodPost, "/attendances", staff, api.create)
	r.add(http.MethodGet, "/attendances/:id", staff, api.retrieve)
	r.add(http.MethodPut, "/attendances/:id", staff, api.update)
	r.add(http.MethodDelete, "/attendances/:id", staff, api.destroy)
}

func (api *attendanceApi) create(ctx echo.Context) error {
	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating attendance")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	attendances, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying attendances")
	}
	if attendances == nil {
		attendances = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(attendances), "attendances": attendances})
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding attendance by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data attendance.UpdateAttendance
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAttendance")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating attendance")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	return ctx.NoContent(http.StatusNoContent)
}
