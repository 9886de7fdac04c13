package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/class"
)

type classApi struct {
	svc      *class.Service
	validate *validator.Validate
}

func registerClassAPI(r *router, deps *Deps) {
	api := classApi{svc: deps.ClassSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/classes", authenticated, api.query)
	r.add(http.MethodPost, "/classes", staff, api.create)
	r.add(http.MethodGet, "/classes/:id", authenticated, api.retrieve)
	r.add(http.MethodPut, "/classes/:id", staff, api.update)
	r.add(http.MethodDelete, "/classes/:id", staff, api.destroy)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(classes), "classes": classes})
}

func (api *classApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding class by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *classApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data class.UpdateClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *classApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}
