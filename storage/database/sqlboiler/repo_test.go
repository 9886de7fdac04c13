package boiledrepos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/attendance"
	"github.com/trezcool/studysphere/core/course"
	"github.com/trezcool/studysphere/core/enrollment"
	"github.com/trezcool/studysphere/core/student"
	"github.com/trezcool/studysphere/core/user"
	"github.com/trezcool/studysphere/storage/database/sqlboiler"
	"github.com/trezcool/studysphere/testutil"
)

func TestUserRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := boiledrepos.NewUserRepository(db)
	ctx := context.Background()

	usr, err := repo.CreateUser(ctx, user.User{Email: "awe@test.cd", Role: user.RoleAdmin, PasswordHash: []byte("hash")})
	require.NoError(t, err)
	assert.Equal(t, 1, usr.ID)
	assert.False(t, usr.IsVerified)

	got, err := repo.GetUserByEmail(ctx, "awe@test.cd")
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	usr.IsVerified = true
	usr.Role = user.RoleTeacher
	updated, err := repo.UpdateUser(ctx, usr)
	require.NoError(t, err)
	assert.Equal(t, usr, updated)

	_, err = repo.CreateUser(ctx, user.User{Email: "awe@test.cd", Role: user.RoleStudent, PasswordHash: []byte("hash")})
	var cErr *core.ConstraintError
	require.True(t, errors.As(err, &cErr), "err = %v", err)
	assert.Equal(t, core.UniqueConstraint, cErr.Kind)
	assert.Equal(t, "email", cErr.Field)
	assert.Equal(t, "a user with this email already exists", cErr.Error())

	users, err := repo.QueryUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, repo.DeleteUser(ctx, usr.ID))
	_, err = repo.GetUserByID(ctx, usr.ID)
	assert.Equal(t, user.ErrNotFound, err)
	assert.Equal(t, user.ErrNotFound, repo.DeleteUser(ctx, usr.ID))

	_, err = repo.UpdateUser(ctx, usr)
	assert.Equal(t, user.ErrNotFound, err)
}

func TestCourseRepository_foreignKeys(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := boiledrepos.NewCourseRepository(db)
	ctx := context.Background()

	_, err := repo.CreateCourse(ctx, course.Course{Name: "Maths", TeacherID: 42})
	var cErr *core.ConstraintError
	require.True(t, errors.As(err, &cErr), "err = %v", err)
	assert.Equal(t, core.ForeignKeyConstraint, cErr.Kind)
	assert.Equal(t, "referenced record not found", cErr.Error())

	tchr := testutil.CreateTeacher(t, db, "Mr T")
	c, err := repo.CreateCourse(ctx, course.Course{Name: "Maths", Description: null.StringFrom("Algebra"), TeacherID: tchr.ID})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", c.Description.String)
	assert.False(t, c.Schedule.Valid)

	testutil.CreateStudent(t, db, "Jane", c.ID)
	err = repo.DeleteCourse(ctx, c.ID)
	require.True(t, errors.As(err, &cErr), "err = %v", err)
	assert.True(t, cErr.Delete)
	assert.Equal(t, "course is still referenced by other records", cErr.Error())

	got, err := repo.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestStudentRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := boiledrepos.NewStudentRepository(db)
	ctx := context.Background()

	tchr := testutil.CreateTeacher(t, db, "Mr T")
	c := testutil.CreateCourse(t, db, "Physics", tchr.ID)
	s, usr := testutil.CreateStudent(t, db, "Jane", c.ID)

	got, err := repo.GetStudentByUserID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, "2023-09-01", got.EnrollmentDate.String())
	assert.Equal(t, "2005-04-12", got.DateOfBirth.String())

	_, err = repo.GetProfileByStudentID(ctx, s.ID)
	assert.Equal(t, student.ErrProfileNotFound, err)

	p, err := repo.CreateProfile(ctx, student.Profile{StudentID: s.ID, EnrollmentNumber: "EN-001", Course: "Physics", YearOfStudy: 2})
	require.NoError(t, err)

	_, err = repo.CreateProfile(ctx, student.Profile{StudentID: s.ID, EnrollmentNumber: "EN-002", Course: "Physics", YearOfStudy: 1})
	var cErr *core.ConstraintError
	require.True(t, errors.As(err, &cErr), "err = %v", err)
	assert.Equal(t, "student_id", cErr.Field)

	p.YearOfStudy = 3
	p, err = repo.UpdateProfile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 3, p.YearOfStudy)

	require.NoError(t, repo.DeleteProfile(ctx, p.ID))
	require.NoError(t, repo.DeleteStudent(ctx, s.ID))
	_, err = repo.GetStudent(ctx, s.ID)
	assert.Equal(t, student.ErrNotFound, err)
}

func TestRecordRepositories(t *testing.T) {
	db := testutil.PrepareDB(t)
	ctx := context.Background()

	tchr := testutil.CreateTeacher(t, db, "Mr T")
	c := testutil.CreateCourse(t, db, "Chemistry", tchr.ID)
	cls := testutil.CreateClass(t, db, "Lab A", tchr.ID)
	s, _ := testutil.CreateStudent(t, db, "Jane", c.ID)

	enrollments := boiledrepos.NewEnrollmentRepository(db)
	e, err := enrollments.CreateEnrollment(ctx, enrollment.Enrollment{StudentID: s.ID, ClassID: null.IntFrom(cls.ID)})
	require.NoError(t, err)
	assert.False(t, e.CourseID.Valid)
	assert.Equal(t, cls.ID, e.ClassID.Int)

	_, err = enrollments.GetEnrollment(ctx, e.ID+1)
	assert.Equal(t, enrollment.ErrNotFound, err)

	attendances := boiledrepos.NewAttendanceRepository(db)
	a, err := attendances.CreateAttendance(ctx, attendance.Attendance{
		StudentID: s.ID,
		CourseID:  null.IntFrom(c.ID),
		Date:      core.MustParseDate("2024-02-29"),
		Status:    attendance.StatusLate,
	})
	require.NoError(t, err)
	all, err := attendances.QueryAttendances(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, a, all[0])
	assert.Equal(t, "2024-02-29", all[0].Date.String())

	// the student is still referenced
	err = boiledrepos.NewStudentRepository(db).DeleteStudent(ctx, s.ID)
	var cErr *core.ConstraintError
	require.True(t, errors.As(err, &cErr), "err = %v", err)
	assert.Equal(t, core.ForeignKeyConstraint, cErr.Kind)
}
