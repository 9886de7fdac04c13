package testutil

import (
	"context"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/class"
	"github.com/trezcool/studysphere/core/course"
	"github.com/trezcool/studysphere/core/student"
	"github.com/trezcool/studysphere/core/teacher"
	"github.com/trezcool/studysphere/core/user"
	"github.com/trezcool/studysphere/storage/database/sqlboiler"
)

// DefaultPassword is the password of every user created by CreateUser.
const DefaultPassword = "Pass#word1"

func CreateUser(t testing.TB, db core.DBExecutor, role string, email ...string) user.User {
	t.Helper()

	usr := user.User{Role: role}
	if len(email) > 0 {
		usr.Email = email[0]
	} else {
		usr.Email = UniqueEmail(role)
	}
	if err := usr.SetPassword(DefaultPassword); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	usr, err := boiledrepos.NewUserRepository(db).CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateTeacher(t testing.TB, db core.DBExecutor, name string) teacher.Teacher {
	t.Helper()

	usr := CreateUser(t, db, user.RoleTeacher)
	tchr, err := boiledrepos.NewTeacherRepository(db).CreateTeacher(context.Background(), teacher.Teacher{UserID: usr.ID, Name: name})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tchr
}

func CreateCourse(t testing.TB, db core.DBExecutor, name string, teacherID int) course.Course {
	t.Helper()

	c, err := boiledrepos.NewCourseRepository(db).CreateCourse(context.Background(), course.Course{
		Name:      name,
		Schedule:  null.StringFrom("Mon 08:00"),
		TeacherID: teacherID,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func CreateClass(t testing.TB, db core.DBExecutor, name string, teacherID int) class.Class {
	t.Helper()

	c, err := boiledrepos.NewClassRepository(db).CreateClass(context.Background(), class.Class{
		Name:      name,
		TeacherID: teacherID,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return c
}

// CreateStudent creates a Student user and its Student record.
func CreateStudent(t testing.TB, db core.DBExecutor, name string, courseID int) (student.Student, user.User) {
	t.Helper()

	usr := CreateUser(t, db, user.RoleStudent)
	s, err := boiledrepos.NewStudentRepository(db).CreateStudent(context.Background(), student.Student{
		UserID:         usr.ID,
		Name:           name,
		EnrollmentDate: core.MustParseDate("2023-09-01"),
		DateOfBirth:    core.MustParseDate("2005-04-12"),
		Gender:         null.StringFrom("F"),
		CourseID:       courseID,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s, usr
}
