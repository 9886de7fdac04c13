package attendance

import (
	"context"
	"errors"

	"github.com/kat-co/vala"

	"github.com/trezcool/studysphere/core"
)

var ErrNotFound = errors.New("attendance not found")

type (
	Repository interface {
		CreateAttendance(ctx context.Context, a Attendance, exec ...core.DBExecutor) (Attendance, error)
		QueryAttendances(ctx context.Context, exec ...core.DBExecutor) ([]Attendance, error)
		GetAttendance(ctx context.Context, id int, exec ...core.DBExecutor) (Attendance, error)
		UpdateAttendance(ctx context.Context, a Attendance, exec ...core.DBExecutor) (Attendance, error)
		DeleteAttendance(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAttendance, exec ...core.DBExecutor) (Attendance, error) {
	day, err := core.ParseDate(na.Date)
	if err != nil {
		return Attendance{}, dateError(err)
	}
	a := Attendance{
		StudentID: na.StudentID,
		CourseID:  na.CourseID,
		ClassID:   na.ClassID,
		Date:      day,
		Status:    na.Status,
	}
	return svc.repo.CreateAttendance(ctx, a, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Attendance, error) {
	return svc.repo.QueryAttendances(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Attendance, error) {
	return svc.repo.GetAttendance(ctx, id, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAttendance, exec ...core.DBExecutor) (Attendance, error) {
	a, err := svc.repo.GetAttendance(ctx, id, exec...)
	if err != nil {
		return Attendance{}, err
	}
	if err = ua.apply(&a); err != nil {
		return Attendance{}, err
	}
	return svc.repo.UpdateAttendance(ctx, a, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteAttendance(ctx, id, exec...)
}
