package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"renewal-service/internal/config"
	"renewal-service/internal/database/postgres"
	"renewal-service/internal/database/redis"
	"renewal-service/internal/event"
	"renewal-service/internal/handlers"
	"renewal-service/internal/models"
	"renewal-service/internal/repository"
	"renewal-service/internal/services"
	"renewal-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupLogging() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}
	setupLogging()

	cfg := config.New()

	slog.Info("Connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host,
		"port", cfg.PostgresCfg.Port,
		"dbname", cfg.PostgresCfg.DBname,
	)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("error connecting to database", "error", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// The broker is optional: renewals still open when it is down, events
	// are just not published.
	var notifier services.RenewalNotifier
	var publisher *event.RenewalEventPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, renewal events will not be published", "error", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewRenewalEventPublisher(rabbitConn)
		notifier = publisher
	}

	// Repositories
	clientRepo := repository.NewClientRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	renewalRepo := repository.NewRenewalRepository(db, redisClient.GetClient())
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTaskTemplateRepository(db, redisClient.GetClient())
	quoteRepo := repository.NewQuoteRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	riskCfg := services.DefaultRiskConfig()
	riskCfg.TimeCriticalDays = cfg.EngineCfg.TimeCriticalDays
	riskCfg.TimeUrgentDays = cfg.EngineCfg.TimeUrgentDays
	riskCfg.TimeApproachingDays = cfg.EngineCfg.TimeApproachingDays
	riskCfg.PremiumLargeThreshold = decimal.NewFromInt(cfg.EngineCfg.PremiumLargeThreshold)
	riskCfg.PremiumMidThreshold = decimal.NewFromInt(cfg.EngineCfg.PremiumMidThreshold)
	riskCfg.PremiumSmallThreshold = decimal.NewFromInt(cfg.EngineCfg.PremiumSmallThreshold)
	riskScorer := services.NewRiskScorer(riskCfg)

	resolver := services.NewTaskTemplateResolver(templateRepo, models.DefaultTaskTemplates)
	opener := services.NewRenewalOpener(renewalRepo, taskRepo, resolver, riskScorer, activityRepo, notifier)
	scanService := services.NewRenewalScanService(policyRepo, opener, cfg.EngineCfg.DefaultLookaheadDays)
	taskService := services.NewTaskService(taskRepo, renewalRepo, activityRepo)
	escalationService := services.NewEscalationService(renewalRepo, services.EscalationConfig{
		WindowDays:     cfg.EngineCfg.EscalationWindowDays,
		StaleAfterDays: cfg.EngineCfg.StaleAfterDays,
	})
	quoteService := services.NewQuoteService(quoteRepo, renewalRepo, policyRepo, activityRepo)
	lifecycleService := services.NewRenewalLifecycleService(renewalRepo, activityRepo)
	intakeService := services.NewIntakeService(clientRepo, policyRepo, templateRepo)

	// HTTP surface
	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Renewal service is healthy")
	})
	handlers.NewRenewalHandler(scanService, taskService, escalationService, lifecycleService, riskScorer).Register(app)
	handlers.NewQuoteHandler(quoteService).Register(app)
	handlers.NewIntakeHandler(intakeService).Register(app)

	// Background scan and sweep
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var poolWg sync.WaitGroup
	pool := worker.NewWorkingPool(cfg.EngineCfg.ScanWorkers, 16)
	poolWg.Add(1)
	go pool.Start(ctx, &poolWg)

	scheduler := worker.NewJobScheduler(
		"renewal-engine",
		time.Duration(cfg.EngineCfg.ScanIntervalMinutes)*time.Minute,
		pool,
	)
	scheduler.AddJob(func(jobCtx context.Context) error {
		result := scanService.RunExpiringPolicyScan(jobCtx, cfg.EngineCfg.DefaultLookaheadDays)
		slog.Info("Scheduled scan finished",
			"created", result.Created,
			"skipped", result.Skipped,
			"errors", len(result.Errors),
		)
		return nil
	})
	scheduler.AddJob(func(jobCtx context.Context) error {
		count, err := taskService.SweepOverdueTasks(jobCtx)
		if err != nil {
			return fmt.Errorf("overdue sweep: %w", err)
		}
		slog.Info("Scheduled sweep finished", "transitioned", count)
		return nil
	})
	if publisher != nil {
		scheduler.AddJob(func(jobCtx context.Context) error {
			entries, err := escalationService.ListEscalations(jobCtx)
			if err != nil {
				return fmt.Errorf("escalation detection: %w", err)
			}
			events := make([]event.EscalationEventModel, 0, len(entries))
			for _, entry := range entries {
				events = append(events, event.EscalationEventModel{
					RenewalID:        entry.RenewalID,
					ClientName:       entry.ClientName,
					PolicyType:       string(entry.PolicyType),
					DaysUntilDue:     entry.DaysUntilDue,
					RiskLevel:        string(entry.RiskLevel),
					Reason:           entry.Reason,
					OverdueTaskCount: entry.OverdueTaskCount,
				})
			}
			if err := publisher.NotifyEscalations(jobCtx, events); err != nil {
				return err
			}
			// The downstream consumer delivers the reminder emails; this
			// service only records that one was queued.
			for _, entry := range entries {
				if err := renewalRepo.IncrementEmailsSent(jobCtx, entry.RenewalID); err != nil {
					slog.Warn("Failed to bump email counter", "renewal_id", entry.RenewalID, "error", err)
				}
			}
			return nil
		})
	}
	go scheduler.Run(ctx)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			slog.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownChan
	slog.Info("Shutting down server...")
	cancel()
	poolWg.Wait()
	if err := app.Shutdown(); err != nil {
		slog.Error("Error during server shutdown", "error", err)
	}
}
