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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	changeSubBookingStatusHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/change_sub_booking_status"
	createChunkHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/create_chunk"
	createSubBookingHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/create_sub_booking"
	deleteSubBookingHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/delete_sub_booking"
	getChunkHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/get_chunk"
	getDashboardSummaryHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/get_dashboard_summary"
	listChunkSubBookingsHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/list_chunk_sub_bookings"
	listOwnerChunksHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/list_owner_chunks"
	recordUsageHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/record_usage"
	updateSubBookingHandler "github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers/update_sub_booking"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/config"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/idempotency"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	subBookingRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/subbooking"
	customerServiceClient "github.com/m04kA/SMC-ParkingAllocationService/internal/integrations/customerservice"
	paymentServiceClient "github.com/m04kA/SMC-ParkingAllocationService/internal/integrations/paymentservice"
	chunksService "github.com/m04kA/SMC-ParkingAllocationService/internal/service/chunks"
	changeAssignmentStatusUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/change_assignment_status"
	createAssignmentUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/create_assignment"
	deleteAssignmentUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/delete_assignment"
	expireOverdueUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/expire_overdue"
	getDashboardSummaryUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/get_dashboard_summary"
	recordUsageUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/record_usage"
	updateAssignmentUC "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/update_assignment"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/logger"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/txmanager"
)

// publisher общий интерфейс RabbitMQ-паблишера и заглушки
type publisher interface {
	Publish(ctx context.Context, event events.AllocationEvent)
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ParkingAllocationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil-коллектор допустим: обертка БД и счетчики usecase его игнорируют
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	chunkRepository := chunkRepo.NewRepository(wrappedDB)
	subBookingRepository := subBookingRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CustomerService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Redis для ключей идемпотентности
	var idempotencyClient idempotency.RedisClient
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Warn("Redis unavailable at %s, Idempotency-Key support disabled: %v", cfg.Redis.Addr, err)
		} else {
			idempotencyClient = redisClient
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}
	idempotencyStore := idempotency.NewStore(idempotencyClient, time.Duration(cfg.Redis.IdempotencyTTL)*time.Second)

	// RabbitMQ для событий распределения
	var eventPublisher publisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, allocation events will not be published: %v", err)
		} else {
			eventPublisher = p
			log.Info("Publishing allocation events to exchange %s", cfg.RabbitMQ.Exchange)
		}
	}
	defer eventPublisher.Close()

	// Инициализируем сервисы
	chunkSvc := chunksService.NewService(
		chunkRepository,
		subBookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAssignmentUseCase := createAssignmentUC.NewUseCase(
		chunkRepository,
		subBookingRepository,
		chunkSvc,
		customerClient,
		idempotencyStore,
		eventPublisher,
		metricsCollector,
		txMgr,
		log,
	)
	updateAssignmentUseCase := updateAssignmentUC.NewUseCase(
		chunkRepository,
		subBookingRepository,
		chunkSvc,
		eventPublisher,
		metricsCollector,
		txMgr,
		log,
	)
	deleteAssignmentUseCase := deleteAssignmentUC.NewUseCase(
		chunkRepository,
		subBookingRepository,
		chunkSvc,
		eventPublisher,
		metricsCollector,
		txMgr,
		log,
	)
	changeStatusUseCase := changeAssignmentStatusUC.NewUseCase(
		chunkRepository,
		subBookingRepository,
		chunkSvc,
		eventPublisher,
		metricsCollector,
		txMgr,
		log,
	)
	recordUsageUseCase := recordUsageUC.NewUseCase(subBookingRepository, eventPublisher, log)
	expireOverdueUseCase := expireOverdueUC.NewUseCase(
		chunkRepository,
		subBookingRepository,
		chunkSvc,
		eventPublisher,
		txMgr,
		log,
	)
	dashboardUseCase := getDashboardSummaryUC.NewUseCase(
		chunkRepository,
		customerClient,
		paymentClient,
		getDashboardSummaryUC.Options{
			SourceTimeout: time.Duration(cfg.Dashboard.SourceTimeout) * time.Second,
			WindowDays:    cfg.Dashboard.WindowDays,
		},
		log,
	)

	// Инициализируем handlers
	createChunk := createChunkHandler.NewHandler(chunkSvc, log)
	getChunk := getChunkHandler.NewHandler(chunkSvc, log)
	listOwnerChunks := listOwnerChunksHandler.NewHandler(chunkSvc, log)
	listChunkSubBookings := listChunkSubBookingsHandler.NewHandler(chunkSvc, log)
	createSubBooking := createSubBookingHandler.NewHandler(createAssignmentUseCase, log)
	updateSubBooking := updateSubBookingHandler.NewHandler(updateAssignmentUseCase, log)
	deleteSubBooking := deleteSubBookingHandler.NewHandler(deleteAssignmentUseCase, log)
	changeSubBookingStatus := changeSubBookingStatusHandler.NewHandler(changeStatusUseCase, log)
	recordUsage := recordUsageHandler.NewHandler(recordUsageUseCase, log)
	getDashboardSummary := getDashboardSummaryHandler.NewHandler(dashboardUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		protected.Use(limiter.Limit)
		log.Info("Rate limiting enabled: %.1f rps, burst=%d per coordinator",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Чанки ---
	protected.HandleFunc("/chunks", createChunk.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/chunks/{chunkId}", getChunk.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/chunks/{chunkId}/sub-bookings", listChunkSubBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{ownerId}/chunks", listOwnerChunks.Handle).Methods(http.MethodGet)

	// --- Суб-бронирования ---
	protected.HandleFunc("/sub-bookings", createSubBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sub-bookings/{subBookingId}", updateSubBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sub-bookings/{subBookingId}", deleteSubBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/sub-bookings/{subBookingId}/status", changeSubBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sub-bookings/{subBookingId}/usage", recordUsage.Handle).Methods(http.MethodPost)

	// --- Дашборд ---
	protected.HandleFunc("/coordinators/{coordinatorId}/dashboard", getDashboardSummary.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      http.TimeoutHandler(r, time.Duration(cfg.Server.RequestTimeout)*time.Second, `{"code":503,"message":"request timeout"}`),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновые задачи: истечение просроченных распределений и очистка лимитеров
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if cfg.Expiry.Enabled {
		go runExpiry(bgCtx, expireOverdueUseCase, time.Duration(cfg.Expiry.IntervalSeconds)*time.Second, log)
		log.Info("Expiry sweep enabled every %ds", cfg.Expiry.IntervalSeconds)
	}
	if limiter != nil {
		go runLimiterCleanup(bgCtx, limiter, log)
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopBackground()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// runExpiry периодически переводит просроченные суб-бронирования и чанки в expired
func runExpiry(ctx context.Context, uc *expireOverdueUC.UseCase, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := uc.Execute(ctx, &expireOverdueUC.Request{Now: time.Now()})
			if err != nil {
				log.Error("Expiry sweep failed: %v", err)
				continue
			}
			if resp.ExpiredSubBookings > 0 || resp.ExpiredChunks > 0 || resp.Failed > 0 {
				log.Info("Expiry sweep: sub_bookings=%d, released=%d, chunks=%d, failed=%d",
					resp.ExpiredSubBookings, resp.ReleasedSpots, resp.ExpiredChunks, resp.Failed)
			}
		}
	}
}

func runLimiterCleanup(ctx context.Context, limiter *middleware.RateLimiter, log *logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Cleanup(); removed > 0 {
				log.Debug("Rate limiter cleanup: removed %d idle coordinators", removed)
			}
		}
	}
}
