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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	commitBookingHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/commit_booking"
	deleteCatalogEntryHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/delete_catalog_entry"
	deleteReservationHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/delete_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_available_slots"
	getDashboardStatsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_dashboard_stats"
	listCatalogHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/list_catalog"
	listReservationsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/list_reservations"
	updateReservationStatusHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/update_reservation_status"
	upsertCatalogEntryHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/upsert_catalog_entry"
	"github.com/m04kA/SMC-BarberScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-BarberScheduler/internal/config"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/lock"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/schema"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
	catalogService "github.com/m04kA/SMC-BarberScheduler/internal/service/catalog"
	reservationsService "github.com/m04kA/SMC-BarberScheduler/internal/service/reservations"
	commitBookingUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/commit_booking"
	resolveAvailabilityUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
	"github.com/m04kA/SMC-BarberScheduler/pkg/metrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

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

	log.Info("Starting SMC-BarberScheduler...")

	// Метрики. При выключенных метриках collector = nil, методы *metrics.Metrics это допускают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	dialect := cfg.Dialect()
	db, err := sql.Open(driverName(dialect), cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool. SQLite работает с единственным соединением на запись
	if dialect == psqlbuilder.SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	if err := db.PingContext(startCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s)", dialect)

	if err := schema.Migrate(startCtx, db, dialect); err != nil {
		log.Fatal("Failed to migrate schema: %v", err)
	}
	log.Info("Database schema is up to date")

	// Репозитории и менеджер транзакций (с обёрткой метрик или без)
	var (
		executor dbmetrics.DBExecutor = db
		beginner txmanager.Beginner   = db
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		executor, beginner = wrappedDB, wrappedDB
		log.Info("Database metrics collection started")
	}

	catalogRepository := catalogRepo.NewRepository(executor, dialect)
	reservationRepository := reservationRepo.NewRepository(executor, dialect)
	txMgr := txmanager.NewTransactionManager(beginner, dialect == psqlbuilder.Postgres)

	// Блокировка слотов: Redis для нескольких инстансов, иначе в памяти процесса
	var locker commitBookingUC.Locker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startCtx).Err(); err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		locker = lock.NewRedisLocker(redisClient, cfg.Redis.LockTTL(), cfg.Booking.LockTimeout(), log)
		log.Info("Slot locks backed by redis (addr=%s)", cfg.Redis.Addr)
	} else {
		locker = lock.NewLocalLocker(cfg.Booking.LockTimeout())
		log.Info("Slot locks are in-process")
	}

	// События бронирований
	var publisher interface {
		commitBookingUC.Publisher
		Close() error
	} = notifier.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := notifier.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Reservation events published to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	policy := domain.BookingPolicy{
		AdvanceBookingDays:    cfg.Booking.AdvanceBookingDays,
		AllowSnapshotFallback: cfg.Booking.AllowSnapshotFallback,
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		reservationRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	if err := catalogSvc.EnsureSeeded(startCtx); err != nil {
		log.Fatal("Failed to seed catalog: %v", err)
	}

	// Инициализируем use cases
	commitBookingUseCase := commitBookingUC.NewUseCase(
		catalogRepository,
		reservationRepository,
		txMgr,
		locker,
		publisher,
		policy,
		metricsCollector,
		log,
	)
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		catalogRepository,
		reservationRepository,
		policy,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(resolveAvailabilityUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getDashboardStats := getDashboardStatsHandler.NewHandler(reservationSvc, log)
	listCatalog := listCatalogHandler.NewHandler(catalogSvc, log)
	upsertCatalogEntry := upsertCatalogEntryHandler.NewHandler(catalogSvc, log)
	deleteCatalogEntry := deleteCatalogEntryHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Клиент ---
	// Свободные слоты мастера на дату
	api.HandleFunc("/staff/{staffId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Фиксация бронирования
	api.HandleFunc("/reservations", commitBooking.Handle).Methods(http.MethodPost)

	// Список бронирований (?clientEmail= для "моих записей")
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// Каталог
	api.HandleFunc("/catalog/{kind}", listCatalog.Handle).Methods(http.MethodGet)

	// --- Администратор (аутентификация на стороне шлюза) ---
	api.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/catalog/{kind}/{entryId}", upsertCatalogEntry.Handle).Methods(http.MethodPut)
	api.HandleFunc("/catalog/{kind}/{entryId}", deleteCatalogEntry.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/admin/stats", getDashboardStats.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

func driverName(dialect psqlbuilder.Dialect) string {
	if dialect == psqlbuilder.SQLite {
		return "sqlite"
	}
	return "postgres"
}
