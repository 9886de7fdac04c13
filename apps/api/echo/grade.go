package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/grade"
)

type gradeApi struct {
	svc      *grade.Service
	validate *validator.Validate
}

func registerGradeAPI(r *router, deps *Deps) {
	api := gradeApi{svc: deps.GradeSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/grades", staff, api.query)
	r.add(http.MethodPost, "/grades", staff, api.create)
	r.add(http.MethodGet, "/grades/:id", staff, api.retrieve)
	r.add(http.MethodPut, "/grades/:id", staff, api.update)
	r.add(http.MethodDelete, "/grades/:id", staff, api.destroy)
}

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *gradeApi) query(ctx echo.Context) error {
	grades, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(grades), "grades": grades})
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding grade by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *gradeApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data grade.UpdateGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
