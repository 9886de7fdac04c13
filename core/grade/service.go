package grade

import (
	"context"
	"errors"

	"github.com/kat-co/vala"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("grade not found")

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade, exec ...core.DBExecutor) (Grade, error)
		QueryGrades(ctx context.Context, exec ...core.DBExecutor) ([]Grade, error)
		GetGrade(ctx context.Context, id int, exec ...core.DBExecutor) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade, exec ...core.DBExecutor) (Grade, error)
		DeleteGrade(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ng NewGrade, exec ...core.DBExecutor) (Grade, error) {
	g := Grade{
		StudentID: ng.StudentID,
		CourseID:  ng.CourseID,
		ClassID:   ng.ClassID,
		Grade:     ng.Grade,
	}
	return svc.repo.CreateGrade(ctx, g, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Grade, error) {
	return svc.repo.GetGrade(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade, exec ...core.DBExecutor) (Grade, error) {
	g, err := svc.repo.GetGrade(ctx, id, exec...)
	if err != nil {
		return Grade{}, err
	}
	ug.apply(&g)
	return svc.repo.UpdateGrade(ctx, g, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteGrade(ctx, id, exec...)
}
