package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
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
	mediasvc "github.com/trezcool/studysphere/services/media"
)

type (
	// Deps holds everything the API needs. Every field is required but Shutdown and Registerer.
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		DB         core.DB
		Validate   *validator.Validate
		Translator ut.Translator
		MediaStore core.MediaStore

		UserSvc       *user.Service
		StudentSvc    *student.Service
		TeacherSvc    *teacher.Service
		CourseSvc     *course.Service
		ClassSvc      *class.Service
		EnrollmentSvc *enrollment.Service
		GradeSvc      *grade.Service
		AttendanceSvc *attendance.Service
		ProgressSvc   *progress.Service

		Shutdown   chan<- error        // receives core.NewShutdownError when the app must stop
		Registerer prometheus.Registerer // request metrics are not collected when nil
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		deps *Deps
		app  *echo.Echo
		auth *authenticator
	}
)

var _ Server = (*server)(nil)

func NewServer(deps *Deps) Server {
	vala.BeginValidation().Validate(
		vala.IsNotNil(deps, "deps"),
	).CheckAndPanic()
	vala.BeginValidation().Validate(
		vala.IsNotNil(deps.Conf, "Conf"),
		vala.IsNotNil(deps.Logger, "Logger"),
		vala.IsNotNil(deps.DB, "DB"),
		vala.IsNotNil(deps.Validate, "Validate"),
		vala.IsNotNil(deps.Translator, "Translator"),
		vala.IsNotNil(deps.MediaStore, "MediaStore"),
		vala.IsNotNil(deps.UserSvc, "UserSvc"),
		vala.IsNotNil(deps.StudentSvc, "StudentSvc"),
		vala.IsNotNil(deps.TeacherSvc, "TeacherSvc"),
		vala.IsNotNil(deps.CourseSvc, "CourseSvc"),
		vala.IsNotNil(deps.ClassSvc, "ClassSvc"),
		vala.IsNotNil(deps.EnrollmentSvc, "EnrollmentSvc"),
		vala.IsNotNil(deps.GradeSvc, "GradeSvc"),
		vala.IsNotNil(deps.AttendanceSvc, "AttendanceSvc"),
		vala.IsNotNil(deps.ProgressSvc, "ProgressSvc"),
	).CheckAndPanic()

	s := &server{
		deps: deps,
		app:  echo.New(),
		auth: newAuthenticator(deps.Conf, deps.UserSvc),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: conf.Server.CORSOrigins}))
	s.app.Use(middleware.BodyLimit(conf.Server.BodyLimit))
	if s.deps.Registerer != nil {
		s.app.Use(metricsMiddleware(s.deps.Registerer, s.deps.Translator))
	}
	s.app.Use(txMiddleware(s.deps.DB))

	if conf.Storage.Provider == core.StorageDisk {
		s.app.Static(mediasvc.MediaURLPrefix, conf.Storage.DiskDir)
	}

	r := &router{group: s.app.Group(""), auth: s.auth}
	r.add(http.MethodGet, "/", public, home)

	registerAuthAPI(r, s.deps)
	registerUserAPI(r, s.deps)
	registerStudentAPI(r, s.deps)
	registerProfileAPI(r, s.deps)
	registerTeacherAPI(r, s.deps)
	registerCourseAPI(r, s.deps)
	registerClassAPI(r, s.deps)
	registerEnrollmentAPI(r, s.deps)
	registerGradeAPI(r, s.deps)
	registerAttendanceAPI(r, s.deps)
	registerProgressAPI(r, s.deps)
	registerUploadAPI(r, s.deps)
}

func (s *server) signalShutdown() {
	if s.deps.Shutdown == nil {
		return
	}
	select {
	case s.deps.Shutdown <- core.NewShutdownError("integrity issue"):
	default:
	}
}

func (s *server) Start() error {
	return s.app.Start(s.deps.Conf.Server.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Welcome to Study Sphere App"})
}
