package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	echoapi "github.com/trezcool/studysphere/apps/api/echo"
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
	logsvc "github.com/trezcool/studysphere/services/logger"
	mediasvc "github.com/trezcool/studysphere/services/media"
	"github.com/trezcool/studysphere/storage/database"
	boiledrepos "github.com/trezcool/studysphere/storage/database/sqlboiler"
)

func main() {
	if err := run(); err != nil {
		log.Printf("main: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	db, err := setUpDB(conf)
	if err != nil {
		return errors.Wrap(err, "setting up database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var mediaStore core.MediaStore
	if conf.Storage.Provider == core.StorageB2 {
		if mediaStore, err = mediasvc.NewB2Store(context.Background(), conf); err != nil {
			return errors.Wrap(err, "setting up media storage")
		}
	} else {
		mediaStore = mediasvc.NewDiskStore(conf)
	}

	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	enrollment.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)
	progress.InitValidators(validate, translator)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus metrics.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	http.DefaultServeMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	shutdown := make(chan error, 1)
	server := echoapi.NewServer(&echoapi.Deps{
		Conf:       conf,
		Logger:     logger,
		DB:         db,
		Validate:   validate,
		Translator: translator,
		MediaStore: mediaStore,

		UserSvc:       user.NewService(boiledrepos.NewUserRepository(db), mailSvc, logger, conf),
		StudentSvc:    student.NewService(boiledrepos.NewStudentRepository(db)),
		TeacherSvc:    teacher.NewService(boiledrepos.NewTeacherRepository(db)),
		CourseSvc:     course.NewService(boiledrepos.NewCourseRepository(db)),
		ClassSvc:      class.NewService(boiledrepos.NewClassRepository(db)),
		EnrollmentSvc: enrollment.NewService(boiledrepos.NewEnrollmentRepository(db)),
		GradeSvc:      grade.NewService(boiledrepos.NewGradeRepository(db)),
		AttendanceSvc: attendance.NewService(boiledrepos.NewAttendanceRepository(db)),
		ProgressSvc:   progress.NewService(boiledrepos.NewProgressRepository(db)),

		Shutdown:   shutdown,
		Registerer: registry,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address))
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrors:
		return errors.Wrap(err, "server error")

	case err = <-shutdown:
		logger.Error("integrity issue, shutting down", err)

	case sig := <-sigs:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
	}

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err = server.Stop(ctx); err != nil {
		return errors.Wrap(err, "could not stop server gracefully")
	}
	return nil
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB, conf.Database.Engine); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
