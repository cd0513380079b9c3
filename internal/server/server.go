package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smarttodo/internal/config"
	"smarttodo/internal/handler"
	"smarttodo/internal/jobs"
	"smarttodo/internal/middleware"
	"smarttodo/internal/notify"
	"smarttodo/internal/repository"
	"smarttodo/internal/scheduler"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine    *gin.Engine
	DB        *gorm.DB
	Config    *config.Config
	Scheduler *scheduler.Scheduler
	Notifier  notify.Notifier
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Notification boundary
	var notifier notify.Notifier
	switch cfg.Notifier {
	case "kafka":
		notifier = notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaReminderTopic)
		log.Printf("Reminder events go to Kafka topic %q", cfg.KafkaReminderTopic)
	default:
		notifier = notify.NewLogNotifier(nil)
	}

	// Background jobs and their static schedule
	sweepJob := jobs.NewSweep(taskRepo)
	reminderJob := jobs.NewReminders(taskRepo, notifier)
	cleanupJob := jobs.NewCleanup(taskRepo, time.Duration(cfg.RetentionDays)*24*time.Hour)

	sched := scheduler.New(
		scheduler.Job{Name: "sweep", Interval: cfg.SweepInterval, Run: sweepJob.Run},
		scheduler.Job{Name: "reminders", Interval: cfg.ReminderInterval, Run: reminderJob.Run},
		scheduler.Job{Name: "cleanup", Interval: cfg.CleanupInterval, Run: cleanupJob.Run},
	)

	// Setup Gin
	r := gin.Default()

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	taskHandler := handler.NewTaskHandler(taskRepo, templateRepo)
	templateHandler := handler.NewTemplateHandler(templateRepo)
	jobsHandler := handler.NewJobsHandler(sweepJob, reminderJob, cleanupJob)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Task lifecycle routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.POST("/tasks/:id/start", taskHandler.Start)
		authorized.POST("/tasks/:id/complete", taskHandler.Complete)
		authorized.PUT("/tasks/:id/status", taskHandler.SetStatus)

		// Template routes
		authorized.POST("/templates", templateHandler.Create)
		authorized.GET("/templates", templateHandler.List)
		authorized.GET("/templates/:id", templateHandler.GetByID)

		// Operational job triggers
		authorized.POST("/jobs/:name/run", jobsHandler.Run)
	}

	return &Server{
		Engine:    r,
		DB:        db,
		Config:    cfg,
		Scheduler: sched,
		Notifier:  notifier,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	s.Scheduler.Start(context.Background())

	go func() {
		log.Printf("Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	s.Scheduler.Stop()
	if err := s.Notifier.Close(); err != nil {
		log.Printf("Notifier close error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s", err)
	}

	log.Println("Server exited properly")
}
