package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/kashafah/scouthub/internal/config"
	"github.com/kashafah/scouthub/internal/db"
	"github.com/kashafah/scouthub/internal/filestore"
	"github.com/kashafah/scouthub/internal/handler"
	"github.com/kashafah/scouthub/internal/job"
	"github.com/kashafah/scouthub/internal/middleware"
	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/password"
	"github.com/kashafah/scouthub/internal/pkg/timeutil"
	"github.com/kashafah/scouthub/internal/repo"
	"github.com/kashafah/scouthub/internal/schedule"
	"github.com/kashafah/scouthub/internal/service"
	"github.com/kashafah/scouthub/internal/share"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "scouthub",
		Short: "scouthub backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run scouthub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(database)
	reportRepo := repo.NewReportRepo(database)
	participantRepo := repo.NewParticipantRepo(database)
	activityRepo := repo.NewActivityRepo(database)
	attendanceRepo := repo.NewAttendanceRepo(database)
	activationRepo := repo.NewActivationRepo(database)
	commentRepo := repo.NewCommentRepo(database)
	notificationRepo := repo.NewNotificationRepo(database)

	if err := bootstrapAdmin(cfg.AdminBootstrap, userRepo); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), jwtTTL)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRepo)
	participantService := service.NewParticipantService(participantRepo)
	activityService := service.NewActivityService(activityRepo, attendanceRepo, participantRepo)
	activationService := service.NewActivationService(activationRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, reportRepo, notificationRepo)
	exportService := service.NewExportService(reportService, participantService)
	printService := service.NewPrintService(reportService)

	registry := share.NewRegistry(share.NewMemoryStore(), reportService)
	shareService := service.NewShareService(registry, reportService, cfg.BaseURL, cfg.Share)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:         handler.NewAuthHandler(authService, activationService),
		Users:        handler.NewUserHandler(userService),
		Reports:      handler.NewReportHandler(reportService, exportService, printService),
		Participants: handler.NewParticipantHandler(participantService, exportService),
		Activities:   handler.NewActivityHandler(activityService),
		Activation:   handler.NewActivationHandler(activationService),
		Comments:     handler.NewCommentHandler(commentService),
		Shares:       handler.NewShareHandler(shareService),
		Files:        handler.NewFileHandler(store),
		UserRepo:     userRepo,
		JWTSecret:    []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewNotificationCleanupJob(notificationRepo, 30), "0 3 * * *"); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

// bootstrapAdmin seeds the first admin account so a fresh install is usable
// without poking the database by hand.
func bootstrapAdmin(cfg config.AdminBootstrap, users *repo.UserRepo) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Username == "" || cfg.Password == "" {
		return fmt.Errorf("admin_bootstrap username and password are required")
	}
	ctx := context.Background()
	if _, err := users.GetByUsername(ctx, cfg.Username); err == nil {
		return nil
	} else if !appErr.IsNotFound(err) {
		return err
	}
	hash, err := password.Hash(cfg.Password)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
		IsActivated:  true,
		Ctime:        now,
		Mtime:        now,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("admin account created", zap.String("username", cfg.Username))
	return nil
}
