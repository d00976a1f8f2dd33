package router

import (
	"fmt"

	"school-api/internal/api/handlers"
	"school-api/internal/api/middleware"
	"school-api/internal/config"
	"school-api/internal/domain/school"
	"school-api/internal/infrastructure/cache"
	"school-api/internal/infrastructure/queue"
	"school-api/internal/infrastructure/repository"
	interfaces "school-api/internal/interfaces/infrastructure"
	"school-api/internal/service"
	"school-api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// RouterComponents bundles the router with the long-lived services the server
// command must shut down.
type RouterComponents struct {
	Router       *gin.Engine
	QueueService interfaces.QueueService
	CacheService interfaces.CacheService
}

func NewRouter(db *gorm.DB) *gin.Engine {
	return NewRouterWithComponents(db).Router
}

// NewRouterWithComponents wires the full engine stack: stores, transaction
// coordinator, cache, audit queue, services and handlers.
func NewRouterWithComponents(db *gorm.DB) *RouterComponents {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(cors.Default())
	r.Use(gin.Recovery())
	r.Use(middleware.ResolveRole())

	cfg := config.Get()

	entityStore := repository.NewEntityStore(db)
	txManager := repository.NewTxManager(db)
	catalogRepo := repository.NewCatalogRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to unwrap sql.DB for reports: %v", err)
	}
	reportRepo := repository.NewReportRepository(sqlx.NewDb(sqlDB, "pgx"))

	cacheService := cache.NewRedisCacheWithConfig(&cfg.Cache)

	var queueService interfaces.QueueService
	if cfg.Queue.Type == "redis" {
		queueService = queue.NewRedisQueue(&cfg.Cache, cfg.Queue.Workers)
		fmt.Println("Using Redis audit queue")
	} else {
		queueService = queue.NewInMemoryQueue(cfg.Queue.BufferSize, cfg.Queue.Workers)
		fmt.Println("Using in-memory audit queue")
	}

	precheck := cfg.Engine.PrecheckEnabled
	assignmentService := service.NewAssignmentService(entityStore, txManager, queueService, precheck)
	registrationService := service.NewRegistrationService(entityStore, txManager, queueService, precheck)
	noteService := service.NewNoteService(entityStore, txManager, queueService, precheck)
	catalogService := service.NewCatalogService(catalogRepo, cacheService)
	auditService := service.NewAuditService(auditRepo)

	queueService.SetAuditService(auditService)
	queueService.StartWorkers()

	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	noteHandler := handlers.NewNoteHandler(noteService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	reportHandler := handlers.NewReportHandler(reportRepo, auditService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	adminOnly := middleware.RequireRole(school.RoleAdmin)
	staff := middleware.RequireRole(school.RoleAdmin, school.RoleTeacher)
	enrollers := middleware.RequireRole(school.RoleAdmin, school.RoleStudent, school.RoleTutor)

	v1 := r.Group("/api/v1")
	{
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", adminOnly, assignmentHandler.Create)
			assignments.PATCH("/:id", adminOnly, assignmentHandler.Update)
			assignments.DELETE("/:id", adminOnly, assignmentHandler.Delete)
		}

		registrations := v1.Group("/registrations")
		{
			registrations.POST("", enrollers, registrationHandler.Register)
			registrations.PATCH("/:id", enrollers, registrationHandler.Update)
			registrations.DELETE("/:id", enrollers, registrationHandler.Deregister)
		}

		notes := v1.Group("/notes")
		{
			notes.POST("", staff, noteHandler.Create)
			notes.PATCH("/:id", staff, noteHandler.Update)
			notes.DELETE("/:id", staff, noteHandler.Delete)
		}

		students := v1.Group("/students")
		{
			students.POST("", adminOnly, catalogHandler.CreateStudent)
			students.GET("", catalogHandler.ListStudents)
			students.GET("/:id", catalogHandler.GetStudent)
			students.PATCH("/:id", adminOnly, catalogHandler.UpdateStudent)
			students.DELETE("/:id", adminOnly, catalogHandler.DeleteStudent)
			students.GET("/:id/registration", registrationHandler.GetByStudent)
			students.GET("/:id/notes", noteHandler.GetByStudent)
		}

		teachers := v1.Group("/teachers")
		{
			teachers.POST("", adminOnly, catalogHandler.CreateTeacher)
			teachers.GET("", catalogHandler.ListTeachers)
			teachers.GET("/:id", catalogHandler.GetTeacher)
			teachers.PATCH("/:id", adminOnly, catalogHandler.UpdateTeacher)
			teachers.DELETE("/:id", adminOnly, catalogHandler.DeleteTeacher)
			teachers.GET("/:id/assignments", assignmentHandler.GetByTeacher)
		}

		specialities := v1.Group("/specialities")
		{
			specialities.POST("", adminOnly, catalogHandler.CreateSpeciality)
			specialities.GET("", catalogHandler.ListSpecialities)
			specialities.GET("/:id", catalogHandler.GetSpeciality)
			specialities.DELETE("/:id", adminOnly, catalogHandler.DeleteSpeciality)
		}

		courses := v1.Group("/courses")
		{
			courses.POST("", adminOnly, catalogHandler.CreateCourse)
			courses.GET("", catalogHandler.ListCourses)
			courses.GET("/:id", catalogHandler.GetCourse)
			courses.PATCH("/:id", adminOnly, catalogHandler.UpdateCourse)
			courses.DELETE("/:id", adminOnly, catalogHandler.DeleteCourse)
		}

		grades := v1.Group("/grades")
		{
			grades.POST("", adminOnly, catalogHandler.CreateGrade)
			grades.GET("", catalogHandler.ListGrades)
			grades.GET("/:id", catalogHandler.GetGrade)
			grades.PATCH("/:id", adminOnly, catalogHandler.UpdateGrade)
			grades.DELETE("/:id", adminOnly, catalogHandler.DeleteGrade)
		}

		sections := v1.Group("/sections")
		{
			sections.POST("", adminOnly, catalogHandler.CreateSection)
			sections.GET("", catalogHandler.ListSections)
			sections.GET("/:id", catalogHandler.GetSection)
			sections.DELETE("/:id", adminOnly, catalogHandler.DeleteSection)
		}

		schedules := v1.Group("/schedules")
		{
			schedules.POST("", adminOnly, catalogHandler.CreateSchedule)
			schedules.GET("", catalogHandler.ListSchedules)
			schedules.DELETE("/:id", adminOnly, catalogHandler.DeleteSchedule)
		}

		tutors := v1.Group("/tutors")
		{
			tutors.POST("", adminOnly, catalogHandler.CreateTutor)
			tutors.GET("", catalogHandler.ListTutors)
			tutors.DELETE("/:id", adminOnly, catalogHandler.DeleteTutor)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/roster", reportHandler.Roster)
			reports.GET("/transcript/:student_id", reportHandler.Transcript)
			reports.GET("/audit", staff, reportHandler.AuditTrail)
		}
	}

	return &RouterComponents{
		Router:       r,
		QueueService: queueService,
		CacheService: cacheService,
	}
}
