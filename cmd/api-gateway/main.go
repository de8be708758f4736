package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-admin-api/api/swagger"
	"github.com/noah-isme/school-admin-api/internal/handler"
	internalmiddleware "github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/internal/validation"
	"github.com/noah-isme/school-admin-api/pkg/cache"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/database"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/requestid"
	tenantmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/tenant"
)

// @title School Admin API
// @version 1.0.0
// @description Teachers, classrooms, subjects and their assignments for school administration.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(context.Background(), cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, import reports will not be kept", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validator := validation.New(validation.WithRejectPastEndDate(cfg.Validation.RejectPastEndDate))

	teacherRepo := repository.NewTeacherRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	courseSubjectRepo := repository.NewCourseSubjectRepository(db)
	tutorRepo := repository.NewClassroomTutorRepository(db)
	assignmentRepo := repository.NewTeacherAssignmentRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	reportRepo := repository.NewImportReportRepository(redisClient, logr)

	teacherSvc := service.NewTeacherService(teacherRepo, classroomRepo, courseSubjectRepo, tutorRepo, validator, logr, metricsSvc)
	classroomSvc := service.NewClassroomService(classroomRepo, validator, logr, metricsSvc)
	subjectSvc := service.NewSubjectService(subjectRepo, validator, logr, metricsSvc)
	courseSubjectSvc := service.NewCourseSubjectService(courseSubjectRepo, classroomRepo, subjectRepo, validator, logr, metricsSvc)
	tutorSvc := service.NewClassroomTutorService(tutorRepo, classroomRepo, teacherRepo, validator, logr, metricsSvc)
	assignmentSvc := service.NewTeacherAssignmentService(assignmentRepo, teacherRepo, courseSubjectRepo, yearRepo, validator, logr, metricsSvc)
	importSvc := service.NewTeacherImportService(teacherSvc, reportRepo, service.ImportConfig{
		MaxRows:   cfg.Import.MaxRows,
		ReportTTL: cfg.Import.ReportTTL,
	}, logr, metricsSvc)
	exportSvc := service.NewTeacherExportService(teacherRepo, logr, nil, nil)
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(tenantmiddleware.Middleware(cfg.Tenant))
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	if metricsSvc != nil {
		r.Use(internalmiddleware.Metrics(metricsSvc))
	}

	var metricsEndpoint http.Handler
	if metricsSvc != nil {
		metricsEndpoint = metricsSvc.Handler()
	}
	ops := handler.NewMetricsHandler(metricsEndpoint, db)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", ops.Prometheus)
	}
	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), internalmiddleware.JWT(tokenSvc), handler.Handlers{
		Teachers:    handler.NewTeacherHandler(teacherSvc, assignmentSvc),
		Roster:      handler.NewTeacherRosterHandler(importSvc, exportSvc, cfg.Import.MaxFileSizeBytes),
		Classrooms:  handler.NewClassroomHandler(classroomSvc, tutorSvc, courseSubjectSvc),
		Subjects:    handler.NewSubjectHandler(subjectSvc),
		Assignments: handler.NewAssignmentHandler(tutorSvc, assignmentSvc, courseSubjectSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
