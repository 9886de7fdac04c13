package course

import (
	"context"
	"errors"

	"github.com/kat-co/vala"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		QueryCourses(ctx context.Context, exec ...core.DBExecutor) ([]Course, error)
		GetCourse(ctx context.Context, id int, exec ...core.DBExecutor) (Course, error)
		UpdateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		DeleteCourse(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse, exec ...core.DBExecutor) (Course, error) {
	c := Course{
		Name:        nc.Name,
		Description: null.NewString(nc.Description, nc.Description != ""),
		Schedule:    null.NewString(nc.Schedule, nc.Schedule != ""),
		TeacherID:   nc.TeacherID,
	}
	return svc.repo.CreateCourse(ctx, c, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Course, error) {
	return svc.repo.GetCourse(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse, exec ...core.DBExecutor) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, id, exec...)
	if err != nil {
		return Course{}, err
	}
	uc.apply(&c)
	return svc.repo.UpdateCourse(ctx, c, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteCourse(ctx, id, exec...)
}
