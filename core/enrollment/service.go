package enrollment

import (
	"context"
	"errors"

	"github.com/kat-co/vala"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("enrollment not found")

type (
	Repository interface {
		CreateEnrollment(ctx context.Context, e Enrollment, exec ...core.DBExecutor) (Enrollment, error)
		QueryEnrollments(ctx context.Context, exec ...core.DBExecutor) ([]Enrollment, error)
		GetEnrollment(ctx context.Context, id int, exec ...core.DBExecutor) (Enrollment, error)
		UpdateEnrollment(ctx context.Context, e Enrollment, exec ...core.DBExecutor) (Enrollment, error)
		DeleteEnrollment(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewEnrollment, exec ...core.DBExecutor) (Enrollment, error) {
	e := Enrollment{StudentID: ne.StudentID, CourseID: ne.CourseID, ClassID: ne.ClassID}
	return svc.repo.CreateEnrollment(ctx, e, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Enrollment, error) {
	return svc.repo.QueryEnrollments(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Enrollment, error) {
	return svc.repo.GetEnrollment(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, ue UpdateEnrollment, exec ...core.DBExecutor) (Enrollment, error) {
	e, err := svc.repo.GetEnrollment(ctx, id, exec...)
	if err != nil {
		return Enrollment{}, err
	}
	ue.apply(&e)
	return svc.repo.UpdateEnrollment(ctx, e, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteEnrollment(ctx, id, exec...)
}
