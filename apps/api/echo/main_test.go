package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/attendance"
	"github.com/trezcool/studysphere/core/class"
	"github.com/trezcool/studysphere/core/course"
	"github.com/trezcool/studysphere/core/enrollment"
	"github.com/trezcool/studysphere/core/grade"
	"github.com/trezcool/studysphere/core/progress"
	"github.com/trezcool/studysphere/core/student"
	"github.com/trezcool/studysphere/core/teacher"
	"github.com/trezcool/studysphere/core/user"
	emailsvc "github.com/trezcool/studysphere/services/email"
	mediasvc "github.com/trezcool/studysphere/services/media"
	boiledrepos "github.com/trezcool/studysphere/storage/database/sqlboiler"
	"github.com/trezcool/studysphere/testutil"
)

var (
	errMissingToken = errorResponse{Error: "Unauthorized", Message: "missing or malformed jwt"}
	errInvalidToken = errorResponse{Error: "Unauthorized", Message: "invalid or expired jwt"}
	errForbidden    = errorResponse{Error: "Forbidden", Message: "permission denied"}
)

type mailRecorder interface {
	core.EmailService
	SentMessages() []core.EmailMessage
}

type testEnv struct {
	t     *testing.T
	db    *sqlx.DB
	srv   *server
	mail  mailRecorder
	media *mediasvc.MemoryStore
	reg   *prometheus.Registry
}

func setup(t *testing.T) *testEnv {
	db := testutil.PrepareDB(t)
	conf := testutil.NewConfig()
	logger := testutil.NewLogger()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	media := mediasvc.NewMemoryStore()
	reg := prometheus.NewRegistry()

	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	enrollment.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)
	progress.InitValidators(validate, translator)

	srv := NewServer(&Deps{
		Conf:       conf,
		Logger:     logger,
		DB:         db,
		Validate:   validate,
		Translator: translator,
		MediaStore: media,

		UserSvc:       user.NewService(boiledrepos.NewUserRepository(db), mailSvc, logger, conf),
		StudentSvc:    student.NewService(boiledrepos.NewStudentRepository(db)),
		TeacherSvc:    teacher.NewService(boiledrepos.NewTeacherRepository(db)),
		CourseSvc:     course.NewService(boiledrepos.NewCourseRepository(db)),
		ClassSvc:      class.NewService(boiledrepos.NewClassRepository(db)),
		EnrollmentSvc: enrollment.NewService(boiledrepos.NewEnrollmentRepository(db)),
		GradeSvc:      grade.NewService(boiledrepos.NewGradeRepository(db)),
		AttendanceSvc: attendance.NewService(boiledrepos.NewAttendanceRepository(db)),
		ProgressSvc:   progress.NewService(boiledrepos.NewProgressRepository(db)),

		Registerer: reg,
	}).(*server)

	return &testEnv{t: t, db: db, srv: srv, mail: mailSvc, media: media, reg: reg}
}

// token returns an access token for usr.
func (env *testEnv) token(usr user.User) string {
	env.t.Helper()
	token, err := env.srv.auth.generateToken(env.srv.auth.userClaims(usr, accessToken))
	if err != nil {
		env.t.Fatalf("token(): %v", err)
	}
	return token
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte // not compared when nil
	extra    interface{}
}

func (env *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) run(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	return env.serve(newAuthRequest(method, tt.path, tt.token, tt.body))
}

func (env *testEnv) runTests(tests []httpTest) {
	for _, tt := range tests {
		tt := tt
		env.t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, env.run(tt))
		})
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) *http.Request {
	var body io.Reader = http.NoBody
	if len(data) > 0 && data[0] != nil {
		body = bytes.NewReader(data[0])
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func errBody(t *testing.T, code int, msg string, details ...map[string]string) []byte {
	return marchallObj(t, newErrorResponse(code, msg, details...))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode(): %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	if len(tt.wantData) == 0 {
		if rec.Body.Len() != 0 {
			t.Errorf("failed! data = %v; want empty body", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v; body %s", err, rec.Body.String())
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
