package teacher

import (
	"context"
	"errors"

	"github.com/kat-co/vala"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("teacher not found")

type (
	Repository interface {
		CreateTeacher(ctx context.Context, t Teacher, exec ...core.DBExecutor) (Teacher, error)
		QueryTeachers(ctx context.Context, exec ...core.DBExecutor) ([]Teacher, error)
		GetTeacher(ctx context.Context, id int, exec ...core.DBExecutor) (Teacher, error)
		UpdateTeacher(ctx context.Context, t Teacher, exec ...core.DBExecutor) (Teacher, error)
		DeleteTeacher(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher, exec ...core.DBExecutor) (Teacher, error) {
	return svc.repo.CreateTeacher(ctx, Teacher{UserID: nt.UserID, Name: nt.Name}, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Teacher, error) {
	return svc.repo.QueryTeachers(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Teacher, error) {
	return svc.repo.GetTeacher(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, ut UpdateTeacher, exec ...core.DBExecutor) (Teacher, error) {
	t, err := svc.repo.GetTeacher(ctx, id, exec...)
	if err != nil {
		return Teacher{}, err
	}
	ut.apply(&t)
	return svc.repo.UpdateTeacher(ctx, t, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteTeacher(ctx, id, exec...)
}
