package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/progress"
)

type progressApi struct {
	svc      *progress.Service
	validate *validator.Validate
}

func registerProgressAPI(r *router, deps *Deps) {
	api := progressApi{svc: deps.ProgressSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/progresses", staff, api.query)
	r.add(http.MethodPost, "/progresses", staff, api.create)
	r.add(http.MethodGet, "/progresses/:id", staff, api.retrieve)
	r.add(http.MethodPut, "/progresses/:id", staff, api.update)
	r.add(http.MethodDelete, "/progresses/:id", staff, api.destroy)
}

func (api *progressApi) create(ctx echo.Context) error {
	var data progress.NewProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgress")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating progress")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *progressApi) query(ctx echo.Context) error {
	progresses, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying progresses")
	}
	if progresses == nil {
		progresses = []progress.Progress{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(progresses), "progresses": progresses})
}

func (api *progressApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding progress by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *progressApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data progress.UpdateProgress
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProgress")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating progress")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *progressApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting progress")
	}
	return ctx.NoContent(http.StatusNoContent)
}
