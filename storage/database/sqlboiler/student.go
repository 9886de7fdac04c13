package boiledrepos

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/student"
)

var (
	studentsTable = table{
		name:    "students",
		columns: []string{"user_id", "name", "enrollment_date", "date_of_birth", "gender", "phone_number", "course_id"},
	}
	profilesTable = table{
		name:    "student_profiles",
		columns: []string{"student_id", "enrollment_number", "course", "year_of_study"},
	}
)

type studentRow struct {
	ID             int         `boil:"id"`
	UserID         int         `boil:"user_id"`
	Name           string      `boil:"name"`
	EnrollmentDate time.Time   `boil:"enrollment_date"`
	DateOfBirth    time.Time   `boil:"date_of_birth"`
	Gender         null.String `boil:"gender"`
	PhoneNumber    null.String `boil:"phone_number"`
	CourseID       int         `boil:"course_id"`
}

func (r *studentRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.UserID, &r.Name, &r.EnrollmentDate, &r.DateOfBirth, &r.Gender, &r.PhoneNumber, &r.CourseID}
}

func (r studentRow) unboil() student.Student {
	return student.Student{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		EnrollmentDate: core.NewDate(r.EnrollmentDate),
		DateOfBirth:    core.NewDate(r.DateOfBirth),
		Gender:         r.Gender,
		PhoneNumber:    r.PhoneNumber,
		CourseID:       r.CourseID,
	}
}

type profileRow struct {
	ID               int    `boil:"id"`
	StudentID        int    `boil:"student_id"`
	EnrollmentNumber string `boil:"enrollment_number"`
	Course           string `boil:"course"`
	YearOfStudy      int    `boil:"year_of_study"`
}

func (r *profileRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.StudentID, &r.EnrollmentNumber, &r.Course, &r.YearOfStudy}
}

func (r profileRow) unboil() student.Profile {
	return student.Profile{
		ID:               r.ID,
		StudentID:        r.StudentID,
		EnrollmentNumber: r.EnrollmentNumber,
		Course:           r.Course,
		YearOfStudy:      r.YearOfStudy,
	}
}

type studentRepository struct {
	baseRepository
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{baseRepository{exec: exec}}
}

func (repo studentRepository) boil(s student.Student) []interface{} {
	return []interface{}{
		s.UserID, s.Name, s.EnrollmentDate.UTC(), s.DateOfBirth.UTC(), s.Gender, s.PhoneNumber, s.CourseID,
	}
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	var r studentRow
	if err := repo.insert(ctx, studentsTable, r.dest(), repo.boil(s), exec); err != nil {
		return student.Student{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, exec ...core.DBExecutor) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.all(ctx, studentsTable, &rows, exec); err != nil {
		return nil, err
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unboil())
	}
	return students, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int, exec ...core.DBExecutor) (student.Student, error) {
	var r studentRow
	if err := repo.one(ctx, studentsTable, &r, student.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return student.Student{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) GetStudentByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (student.Student, error) {
	var r studentRow
	if err := repo.one(ctx, studentsTable, &r, student.ErrNotFound, exec, `"user_id" = $1`, userID); err != nil {
		return student.Student{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	var r studentRow
	if err := repo.update(ctx, studentsTable, r.dest(), student.ErrNotFound, s.ID, repo.boil(s), exec); err != nil {
		return student.Student{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, studentsTable, student.ErrNotFound, id, exec)
}

func (repo studentRepository) boilProfile(p student.Profile) []interface{} {
	return []interface{}{p.StudentID, p.EnrollmentNumber, p.Course, p.YearOfStudy}
}

func (repo studentRepository) CreateProfile(ctx context.Context, p student.Profile, exec ...core.DBExecutor) (student.Profile, error) {
	var r profileRow
	if err := repo.insert(ctx, profilesTable, r.dest(), repo.boilProfile(p), exec); err != nil {
		return student.Profile{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) GetProfileByStudentID(ctx context.Context, studentID int, exec ...core.DBExecutor) (student.Profile, error) {
	var r profileRow
	if err := repo.one(ctx, profilesTable, &r, student.ErrProfileNotFound, exec, `"student_id" = $1`, studentID); err != nil {
		return student.Profile{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) UpdateProfile(ctx context.Context, p student.Profile, exec ...core.DBExecutor) (student.Profile, error) {
	var r profileRow
	if err := repo.update(ctx, profilesTable, r.dest(), student.ErrProfileNotFound, p.ID, repo.boilProfile(p), exec); err != nil {
		return student.Profile{}, err
	}
	return r.unboil(), nil
}

func (repo studentRepository) DeleteProfile(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, profilesTable, student.ErrProfileNotFound, id, exec)
}
