package class

import (
	"context"
	"errors"

	"github.com/kat-co/vala"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		CreateClass(ctx context.Context, c Class, exec ...core.DBExecutor) (Class, error)
		QueryClasses(ctx context.Context, exec ...core.DBExecutor) ([]Class, error)
		GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (Class, error)
		UpdateClass(ctx context.Context, c Class, exec ...core.DBExecutor) (Class, error)
		DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClass, exec ...core.DBExecutor) (Class, error) {
	c := Class{
		Name:        nc.Name,
		Description: null.NewString(nc.Description, nc.Description != ""),
		Schedule:    null.NewString(nc.Schedule, nc.Schedule != ""),
		TeacherID:   nc.TeacherID,
	}
	return svc.repo.CreateClass(ctx, c, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Class, error) {
	return svc.repo.QueryClasses(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Class, error) {
	return svc.repo.GetClass(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateClass, exec ...core.DBExecutor) (Class, error) {
	c, err := svc.repo.GetClass(ctx, id, exec...)
	if err != nil {
		return Class{}, err
	}
	uc.apply(&c)
	return svc.repo.UpdateClass(ctx, c, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteClass(ctx, id, exec...)
}
