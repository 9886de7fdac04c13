package boiledrepos

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/attendance"
	"github.com/trezcool/studysphere/core/enrollment"
	"github.com/trezcool/studysphere/core/grade"
	"github.com/trezcool/studysphere/core/progress"
)

// Per-student records, each linked to a course or a class.

var (
	enrollmentsTable = table{name: "enrollments", columns: []string{"student_id", "course_id", "class_id"}}
	gradesTable      = table{name: "grades", columns: []string{"student_id", "course_id", "class_id", "grade"}}
	attendancesTable = table{name: "attendances", columns: []string{"student_id", "course_id", "class_id", "date", "status"}}
	progressesTable  = table{name: "progresses", columns: []string{"student_id", "course_id", "class_id", "progress_percentage"}}
)

type enrollmentRow struct {
	ID        int      `boil:"id"`
	StudentID int      `boil:"student_id"`
	CourseID  null.Int `boil:"course_id"`
	ClassID   null.Int `boil:"class_id"`
}

func (r *enrollmentRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.StudentID, &r.CourseID, &r.ClassID}
}

func (r enrollmentRow) unboil() enrollment.Enrollment {
	return enrollment.Enrollment{ID: r.ID, StudentID: r.StudentID, CourseID: r.CourseID, ClassID: r.ClassID}
}

type enrollmentRepository struct {
	baseRepository
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(exec core.DBExecutor) *enrollmentRepository {
	return &enrollmentRepository{baseRepository{exec: exec}}
}

func (repo enrollmentRepository) boil(e enrollment.Enrollment) []interface{} {
	return []interface{}{e.StudentID, e.CourseID, e.ClassID}
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	var r enrollmentRow
	if err := repo.insert(ctx, enrollmentsTable, r.dest(), repo.boil(e), exec); err != nil {
		return enrollment.Enrollment{}, err
	}
	return r.unboil(), nil
}

func (repo enrollmentRepository) QueryEnrollments(ctx context.Context, exec ...core.DBExecutor) ([]enrollment.Enrollment, error) {
	var rows []enrollmentRow
	if err := repo.all(ctx, enrollmentsTable, &rows, exec); err != nil {
		return nil, err
	}
	enrollments := make([]enrollment.Enrollment, 0, len(rows))
	for _, r := range rows {
		enrollments = append(enrollments, r.unboil())
	}
	return enrollments, nil
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, id int, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	var r enrollmentRow
	if err := repo.one(ctx, enrollmentsTable, &r, enrollment.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return enrollment.Enrollment{}, err
	}
	return r.unboil(), nil
}

func (repo enrollmentRepository) UpdateEnrollment(ctx context.Context, e enrollment.Enrollment, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	var r enrollmentRow
	if err := repo.update(ctx, enrollmentsTable, r.dest(), enrollment.ErrNotFound, e.ID, repo.boil(e), exec); err != nil {
		return enrollment.Enrollment{}, err
	}
	return r.unboil(), nil
}

func (repo enrollmentRepository) DeleteEnrollment(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, enrollmentsTable, enrollment.ErrNotFound, id, exec)
}

type gradeRow struct {
	ID        int      `boil:"id"`
	StudentID int      `boil:"student_id"`
	CourseID  null.Int `boil:"course_id"`
	ClassID   null.Int `boil:"class_id"`
	Grade     string   `boil:"grade"`
}

func (r *gradeRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.StudentID, &r.CourseID, &r.ClassID, &r.Grade}
}

func (r gradeRow) unboil() grade.Grade {
	return grade.Grade{ID: r.ID, StudentID: r.StudentID, CourseID: r.CourseID, ClassID: r.ClassID, Grade: r.Grade}
}

type gradeRepository struct {
	baseRepository
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(exec core.DBExecutor) *gradeRepository {
	return &gradeRepository{baseRepository{exec: exec}}
}

func (repo gradeRepository) boil(g grade.Grade) []interface{} {
	return []interface{}{g.StudentID, g.CourseID, g.ClassID, g.Grade}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, g grade.Grade, exec ...core.DBExecutor) (grade.Grade, error) {
	var r gradeRow
	if err := repo.insert(ctx, gradesTable, r.dest(), repo.boil(g), exec); err != nil {
		return grade.Grade{}, err
	}
	return r.unboil(), nil
}

func (repo gradeRepository) QueryGrades(ctx context.Context, exec ...core.DBExecutor) ([]grade.Grade, error) {
	var rows []gradeRow
	if err := repo.all(ctx, gradesTable, &rows, exec); err != nil {
		return nil, err
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.unboil())
	}
	return grades, nil
}

func (repo gradeRepository) GetGrade(ctx context.Context, id int, exec ...core.DBExecutor) (grade.Grade, error) {
	var r gradeRow
	if err := repo.one(ctx, gradesTable, &r, grade.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return grade.Grade{}, err
	}
	return r.unboil(), nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade, exec ...core.DBExecutor) (grade.Grade, error) {
	var r gradeRow
	if err := repo.update(ctx, gradesTable, r.dest(), grade.ErrNotFound, g.ID, repo.boil(g), exec); err != nil {
		return grade.Grade{}, err
	}
	return r.unboil(), nil
}

func (repo gradeRepository) DeleteGrade(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, gradesTable, grade.ErrNotFound, id, exec)
}

type attendanceRow struct {
	ID        int       `boil:"id"`
	StudentID int       `boil:"student_id"`
	CourseID  null.Int  `boil:"course_id"`
	ClassID   null.Int  `boil:"class_id"`
	Date      time.Time `boil:"date"`
	Status    string    `boil:"status"`
}

func (r *attendanceRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.StudentID, &r.CourseID, &r.ClassID, &r.Date, &r.Status}
}

func (r attendanceRow) unboil() attendance.Attendance {
	return attendance.Attendance{
		ID:        r.ID,
		StudentID: r.StudentID,
		CourseID:  r.CourseID,
		ClassID:   r.ClassID,
		Date:      core.NewDate(r.Date),
		Status:    r.Status,
	}
}

type attendanceRepository struct {
	baseRepository
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(exec core.DBExecutor) *attendanceRepository {
	return &attendanceRepository{baseRepository{exec: exec}}
}

func (repo attendanceRepository) boil(a attendance.Attendance) []interface{} {
	return []interface{}{a.StudentID, a.CourseID, a.ClassID, a.Date.UTC(), a.Status}
}

func (repo attendanceRepository) CreateAttendance(ctx context.Context, a attendance.Attendance, exec ...core.DBExecutor) (attendance.Attendance, error) {
	var r attendanceRow
	if err := repo.insert(ctx, attendancesTable, r.dest(), repo.boil(a), exec); err != nil {
		return attendance.Attendance{}, err
	}
	return r.unboil(), nil
}

func (repo attendanceRepository) QueryAttendances(ctx context.Context, exec ...core.DBExecutor) ([]attendance.Attendance, error) {
	var rows []attendanceRow
	if err := repo.all(ctx, attendancesTable, &rows, exec); err != nil {
		return nil, err
	}
	attendances := make([]attendance.Attendance, 0, len(rows))
	for _, r := range rows {
		attendances = append(attendances, r.unboil())
	}
	return attendances, nil
}

func (repo attendanceRepository) GetAttendance(ctx context.Context, id int, exec ...core.DBExecutor) (attendance.Attendance, error) {
	var r attendanceRow
	if err := repo.one(ctx, attendancesTable, &r, attendance.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return attendance.Attendance{}, err
	}
	return r.unboil(), nil
}

func (repo attendanceRepository) UpdateAttendance(ctx context.Context, a attendance.Attendance, exec ...core.DBExecutor) (attendance.Attendance, error) {
	var r attendanceRow
	if err := repo.update(ctx, attendancesTable, r.dest(), attendance.ErrNotFound, a.ID, repo.boil(a), exec); err != nil {
		return attendance.Attendance{}, err
	}
	return r.unboil(), nil
}

func (repo attendanceRepository) DeleteAttendance(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, attendancesTable, attendance.ErrNotFound, id, exec)
}

type progressRow struct {
	ID                 int      `boil:"id"`
	StudentID          int      `boil:"student_id"`
	CourseID           null.Int `boil:"course_id"`
	ClassID            null.Int `boil:"class_id"`
	ProgressPercentage float64  `boil:"progress_percentage"`
}

func (r *progressRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.StudentID, &r.CourseID, &r.ClassID, &r.ProgressPercentage}
}

func (r progressRow) unboil() progress.Progress {
	return progress.Progress{
		ID:                 r.ID,
		StudentID:          r.StudentID,
		CourseID:           r.CourseID,
		ClassID:            r.ClassID,
		ProgressPercentage: r.ProgressPercentage,
	}
}

type progressRepository struct {
	baseRepository
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(exec core.DBExecutor) *progressRepository {
	return &progressRepository{baseRepository{exec: exec}}
}

func (repo progressRepository) boil(p progress.Progress) []interface{} {
	return []interface{}{p.StudentID, p.CourseID, p.ClassID, p.ProgressPercentage}
}

func (repo progressRepository) CreateProgress(ctx context.Context, p progress.Progress, exec ...core.DBExecutor) (progress.Progress, error) {
	var r progressRow
	if err := repo.insert(ctx, progressesTable, r.dest(), repo.boil(p), exec); err != nil {
		return progress.Progress{}, err
	}
	return r.unboil(), nil
}

func (repo progressRepository) QueryProgresses(ctx context.Context, exec ...core.DBExecutor) ([]progress.Progress, error) {
	var rows []progressRow
	if err := repo.all(ctx, progressesTable, &rows, exec); err != nil {
		return nil, err
	}
	progresses := make([]progress.Progress, 0, len(rows))
	for _, r := range rows {
		progresses = append(progresses, r.unboil())
	}
	return progresses, nil
}

func (repo progressRepository) GetProgress(ctx context.Context, id int, exec ...core.DBExecutor) (progress.Progress, error) {
	var r progressRow
	if err := repo.one(ctx, progressesTable, &r, progress.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return progress.Progress{}, err
	}
	return r.unboil(), nil
}

func (repo progressRepository) UpdateProgress(ctx context.Context, p progress.Progress, exec ...core.DBExecutor) (progress.Progress, error) {
	var r progressRow
	if err := repo.update(ctx, progressesTable, r.dest(), progress.ErrNotFound, p.ID, repo.boil(p), exec); err != nil {
		return progress.Progress{}, err
	}
	return r.unboil(), nil
}

func (repo progressRepository) DeleteProgress(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, progressesTable, progress.ErrNotFound, id, exec)
}
