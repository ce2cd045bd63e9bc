package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/daily-planner-api/internal/config"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	"github.com/yukikurage/daily-planner-api/internal/handlers"
	"github.com/yukikurage/daily-planner-api/internal/logging"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(logging.GinLogger(zap.L()), logging.GinRecovery(zap.L()))

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Keep the interface nil when AI is disabled so the service reports it.
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	}

	templateRepo := repository.NewTemplateRepository(db)
	scheduleService := services.NewScheduleService(repository.NewDailyTaskListRepository(db), templateRepo, loc)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db))),
		Tasks:     handlers.NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(db), suggester)),
		Templates: handlers.NewTemplateHandler(services.NewTemplateService(templateRepo)),
		Schedules: handlers.NewScheduleHandler(scheduleService),
		DailyTask: handlers.NewDailyTaskHandler(services.NewDailyTaskService(repository.NewDailyTaskRepository(db), loc)),
		Labels:    handlers.NewLabelHandler(services.NewLabelService(repository.NewLabelRepository(db))),
		Analytics: handlers.NewAnalyticsHandler(services.NewAnalyticsService(repository.NewAnalyticsRepository(db))),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("Server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		zap.L().Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.AutoMaterialize {
		if err := startAutoMaterialize(ctx, g, cfg, loc, scheduleService); err != nil {
			return err
		}
	}

	return g.Wait()
}

func startAutoMaterialize(ctx context.Context, g *errgroup.Group, cfg *config.Config, loc *time.Location, scheduleService *services.ScheduleService) error {
	scheduler := services.NewSchedulerService(loc)
	_, err := scheduler.ScheduleDaily(cfg.AutoMaterializeAt, func() {
		if _, err := scheduleService.AutoMaterializeToday(); err != nil {
			zap.L().Error("Auto-materialization run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid AUTO_MATERIALIZE_AT: %w", err)
	}

	scheduler.Start()
	zap.L().Info("Auto-materialization enabled",
		zap.String("at", cfg.AutoMaterializeAt),
		zap.String("timezone", loc.String()))

	g.Go(func() error {
		<-ctx.Done()
		scheduler.Stop()
		return nil
	})
	return nil
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreCookie:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(10, "tcp", redisAddr, "", "", []byte(cfg.SessionSecret))
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
