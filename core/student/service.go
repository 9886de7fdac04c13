package student

import (
	"context"
	"errors"

	"github.com/kat-co/vala"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

var (
	ErrNotFound        = errors.New("student not found")
	ErrProfileNotFound = errors.New("student profile not found")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		QueryStudents(ctx context.Context, exec ...core.DBExecutor) ([]Student, error)
		GetStudent(ctx context.Context, id int, exec ...core.DBExecutor) (Student, error)
		GetStudentByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (Student, error)
		UpdateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error

		CreateProfile(ctx context.Context, p Profile, exec ...core.DBExecutor) (Profile, error)
		GetProfileByStudentID(ctx context.Context, studentID int, exec ...core.DBExecutor) (Profile, error)
		UpdateProfile(ctx context.Context, p Profile, exec ...core.DBExecutor) (Profile, error)
		DeleteProfile(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent, exec ...core.DBExecutor) (Student, error) {
	enrolledOn, err := core.ParseDate(ns.EnrollmentDate)
	if err != nil {
		return Student{}, dateError("enrollment_date", err)
	}
	bornOn, err := core.ParseDate(ns.DateOfBirth)
	if err != nil {
		return Student{}, dateError("date_of_birth", err)
	}

	s := Student{
		UserID:         ns.UserID,
		Name:           ns.Name,
		EnrollmentDate: enrolledOn,
		DateOfBirth:    bornOn,
		Gender:         null.NewString(ns.Gender, ns.Gender != ""),
		PhoneNumber:    null.NewString(ns.PhoneNumber, ns.PhoneNumber != ""),
		CourseID:       ns.CourseID,
	}
	return svc.repo.CreateStudent(ctx, s, exec...)
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (Student, error) {
	return svc.repo.GetStudent(ctx, id, exec...)
}

// GetByUserID returns the Student record owned by a User.
func (svc *Service) GetByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (Student, error) {
	return svc.repo.GetStudentByUserID(ctx, userID, exec...)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent, exec ...core.DBExecutor) (Student, error) {
	s, err := svc.repo.GetStudent(ctx, id, exec...)
	if err != nil {
		return Student{}, err
	}
	if err = us.apply(&s); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(ctx, s, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteStudent(ctx, id, exec...)
}

// Profiles

func (svc *Service) CreateProfile(ctx context.Context, studentID int, np NewProfile, exec ...core.DBExecutor) (Profile, error) {
	if _, err := svc.repo.GetStudent(ctx, studentID, exec...); err != nil {
		return Profile{}, err
	}
	p := Profile{
		StudentID:        studentID,
		EnrollmentNumber: np.EnrollmentNumber,
		Course:           np.Course,
		YearOfStudy:      np.YearOfStudy,
	}
	return svc.repo.CreateProfile(ctx, p, exec...)
}

func (svc *Service) GetProfile(ctx context.Context, studentID int, exec ...core.DBExecutor) (Profile, error) {
	return svc.repo.GetProfileByStudentID(ctx, studentID, exec...)
}

func (svc *Service) UpdateProfile(ctx context.Context, studentID int, up UpdateProfile, exec ...core.DBExecutor) (Profile, error) {
	p, err := svc.repo.GetProfileByStudentID(ctx, studentID, exec...)
	if err != nil {
		return Profile{}, err
	}
	up.apply(&p)
	return svc.repo.UpdateProfile(ctx, p, exec...)
}

func (svc *Service) DeleteProfile(ctx context.Context, studentID int, exec ...core.DBExecutor) error {
	p, err := svc.repo.GetProfileByStudentID(ctx, studentID, exec...)
	if err != nil {
		return err
	}
	return svc.repo.DeleteProfile(ctx, p.ID, exec...)
}
