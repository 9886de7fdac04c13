package echoapi

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/attendance"
	"github.com/trezcool/studysphere/core/enrollment"
	"github.com/trezcool/studysphere/core/grade"
	"github.com/trezcool/studysphere/core/progress"
	"github.com/trezcool/studysphere/core/user"
	"github.com/trezcool/studysphere/testutil"
)

type recordFixtures struct {
	env          *testEnv
	studentID    int
	courseID     int
	classID      int
	adminToken   string
	teacherToken string
	studentToken string
}

func setupRecords(t *testing.T) recordFixtures {
	env := setup(t)
	tchr := testutil.CreateTeacher(t, env.db, "Mr T")
	algebra := testutil.CreateCourse(t, env.db, "Algebra", tchr.ID)
	fifth := testutil.CreateClass(t, env.db, "5A", tchr.ID)
	awe, aweUsr := testutil.CreateStudent(t, env.db, "Awe", algebra.ID)

	return recordFixtures{
		env:          env,
		studentID:    awe.ID,
		courseID:     algebra.ID,
		classID:      fifth.ID,
		adminToken:   env.token(testutil.CreateUser(t, env.db, user.RoleAdmin)),
		teacherToken: env.token(testutil.CreateUser(t, env.db, user.RoleTeacher)),
		studentToken: env.token(aweUsr),
	}
}

var courseOrClass = map[string]string{
	"course_id": "one of course_id or class_id is required",
	"class_id":  "one of course_id or class_id is required",
}

func Test_enrollmentApi(t *testing.T) {
	f := setupRecords(t)

	byCourse := enrollment.Enrollment{ID: 1, StudentID: f.studentID, CourseID: null.IntFrom(f.courseID)}
	both := enrollment.Enrollment{ID: 1, StudentID: f.studentID, CourseID: null.IntFrom(f.courseID), ClassID: null.IntFrom(f.classID)}

	f.env.runTests([]httpTest{
		{
			name: "neither course nor class", method: http.MethodPost, path: "/enrollments", token: f.adminToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID}), wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", courseOrClass),
		},
		{
			name: "teachers cannot enroll", method: http.MethodPost, path: "/enrollments", token: f.teacherToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID}), wantCode: http.StatusForbidden,
		},
		{
			name: "unknown class", method: http.MethodPost, path: "/enrollments", token: f.adminToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "class_id": 999}), wantCode: http.StatusNotFound,
		},
		{
			name: "create", method: http.MethodPost, path: "/enrollments", token: f.adminToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID}), wantCode: http.StatusCreated,
			wantData: marchallObj(t, byCourse),
		},
		{
			name: "teachers can read", path: "/enrollments", token: f.teacherToken,
			wantData: marchallObj(t, echo.Map{"count": 1, "enrollments": []enrollment.Enrollment{byCourse}}),
		},
		{name: "students cannot read", path: "/enrollments", token: f.studentToken, wantCode: http.StatusForbidden},
		{
			name: "add class", method: http.MethodPut, path: "/enrollments/1", token: f.adminToken,
			body: marchallObj(t, echo.Map{"class_id": f.classID}), wantData: marchallObj(t, both),
		},
		{name: "delete", method: http.MethodDelete, path: "/enrollments/1", token: f.adminToken, wantCode: http.StatusNoContent},
		{name: "deleted", path: "/enrollments/1", token: f.adminToken, wantCode: http.StatusNotFound},
	})
}

func Test_gradeApi(t *testing.T) {
	f := setupRecords(t)

	aPlus := grade.Grade{ID: 1, StudentID: f.studentID, ClassID: null.IntFrom(f.classID), Grade: "A+"}

	f.env.runTests([]httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/grades", token: f.teacherToken,
			body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{
				"student_id": "this field is required",
				"grade":      "this field is required",
				"course_id":  courseOrClass["course_id"],
				"class_id":   courseOrClass["class_id"],
			}),
		},
		{
			name: "grade too long", method: http.MethodPost, path: "/grades", token: f.teacherToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "class_id": f.classID, "grade": "AAAAAA"}), wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown student", method: http.MethodPost, path: "/grades", token: f.teacherToken,
			body: marchallObj(t, echo.Map{"student_id": 999, "class_id": f.classID, "grade": "A+"}), wantCode: http.StatusNotFound,
		},
		{
			name: "create", method: http.MethodPost, path: "/grades", token: f.teacherToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "class_id": f.classID, "grade": " A+ "}), wantCode: http.StatusCreated,
			wantData: marchallObj(t, aPlus),
		},
		{name: "students cannot read", path: "/grades/1", token: f.studentToken, wantCode: http.StatusForbidden},
		{
			name: "empty grade is kept", method: http.MethodPut, path: "/grades/1", token: f.teacherToken,
			body: []byte(`{"grade":""}`), wantData: marchallObj(t, aPlus),
		},
		{
			name: "regrade", method: http.MethodPut, path: "/grades/1", token: f.adminToken, body: []byte(`{"grade":"B"}`),
			wantData: marchallObj(t, grade.Grade{ID: 1, StudentID: f.studentID, ClassID: null.IntFrom(f.classID), Grade: "B"}),
		},
		{
			name: "referenced student", method: http.MethodDelete, path: "/students/1", token: f.adminToken, wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "student is still referenced by other records"),
		},
		{name: "delete", method: http.MethodDelete, path: "/grades/1", token: f.teacherToken, wantCode: http.StatusNoContent},
	})
}

func Test_attendanceApi(t *testing.T) {
	f := setupRecords(t)

	present := attendance.Attendance{
		ID: 1, StudentID: f.studentID, CourseID: null.IntFrom(f.courseID), Date: core.MustParseDate("2024-03-04"), Status: attendance.StatusPresent,
	}
	late := present
	late.Status = attendance.StatusLate
	late.Date = core.MustParseDate("2024-03-05")

	f.env.runTests([]httpTest{
		{
			name: "bad status and date", method: http.MethodPost, path: "/attendances", token: f.teacherToken,
			body:     marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID, "date": "04/03/2024", "status": "Sick"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "create", method: http.MethodPost, path: "/attendances", token: f.teacherToken,
			body:     marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID, "date": "2024-03-04", "status": "Present"}),
			wantCode: http.StatusCreated, wantData: marchallObj(t, present),
		},
		{
			name: "list", path: "/attendances", token: f.adminToken,
			wantData: []byte(`{"count":1,"attendances":[{"id":1,"student_id":1,"course_id":1,"class_id":null,"date":"2024-03-04","status":"Present"}]}`),
		},
		{
			name: "update bad date", method: http.MethodPut, path: "/attendances/1", token: f.teacherToken,
			body: []byte(`{"date":"2024-3-5"}`), wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{"date": "must be a valid date (YYYY-MM-DD)"}),
		},
		{
			name: "update", method: http.MethodPut, path: "/attendances/1", token: f.teacherToken,
			body: []byte(`{"date":"2024-03-05","status":"Late"}`), wantData: marchallObj(t, late),
		},
		{name: "delete", method: http.MethodDelete, path: "/attendances/1", token: f.teacherToken, wantCode: http.StatusNoContent},
		{name: "delete unknown", method: http.MethodDelete, path: "/attendances/1", token: f.teacherToken, wantCode: http.StatusNotFound},
	})
}

func Test_progressApi(t *testing.T) {
	f := setupRecords(t)

	half := progress.Progress{ID: 1, StudentID: f.studentID, CourseID: null.IntFrom(f.courseID), ProgressPercentage: 50.5}

	f.env.runTests([]httpTest{
		{
			name: "missing percentage", method: http.MethodPost, path: "/progresses", token: f.teacherToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID}), wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{"progress_percentage": "this field is required"}),
		},
		{
			name: "over 100", method: http.MethodPost, path: "/progresses", token: f.teacherToken,
			body: marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID, "progress_percentage": 101}), wantCode: http.StatusBadRequest,
		},
		{
			name: "zero is a value", method: http.MethodPost, path: "/progresses", token: f.teacherToken,
			body:     marchallObj(t, echo.Map{"student_id": f.studentID, "course_id": f.courseID, "progress_percentage": 0}),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, progress.Progress{ID: 1, StudentID: f.studentID, CourseID: null.IntFrom(f.courseID)}),
		},
		{
			name: "update", method: http.MethodPut, path: "/progresses/1", token: f.teacherToken,
			body: []byte(`{"progress_percentage":50.5}`), wantData: marchallObj(t, half),
		},
		{
			name: "zero keeps the value", method: http.MethodPut, path: "/progresses/1", token: f.teacherToken,
			body: []byte(`{"progress_percentage":0}`), wantData: marchallObj(t, half),
		},
		{name: "students cannot write", method: http.MethodDelete, path: "/progresses/1", token: f.studentToken, wantCode: http.StatusForbidden},
		{name: "delete", method: http.MethodDelete, path: "/progresses/1", token: f.adminToken, wantCode: http.StatusNoContent},
	})
}
