package progress

import (
	"context"
	"errors"

	"github.com/kat-co/vala"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("progress not found")

type (
	Repository interface {
		CreateProgress(ctx context.Context, p Progress, exec ...core.DBExecutor) (Progress, error)
		QueryProgresses(ctx context.Context, exec ...core.DBExecutor) ([]Progress, error)
		GetProgress(ctx context.Context, id int, exec ...core.DBExecutor) (Progress, error)
		UpdateProgress(ctx context.Context, p Progress, exec ...core.DBExecutor) (Progress, error)
		DeleteProgress(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, np NewProgress, exec ...core.DBExecutor) (Progress, error) {
	p := Progress{
		StudentID: np.StudentID,
		CourseID:  np.CourseID,
		ClassID:   np.ClassID,
	}
	if np.ProgressPercentage != nil {
		p.ProgressPercentage = *np.ProgressPercentage
	}
	return svc.repo.CreateProgress(ctx, p, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Progress, error) {
	return svc.repo.QueryProgresses(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Progress, error) {
	return svc.repo.GetProgress(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, up UpdateProgress, exec ...core.DBExecutor) (Progress, error) {
	p, err := svc.repo.GetProgress(ctx, id, exec...)
	if err != nil {
		return Progress{}, err
	}
	up.apply(&p)
	return svc.repo.UpdateProgress(ctx, p, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteProgress(ctx, id, exec...)
}
