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

	cancelReservationHandler "github.com/tablebook/reservation-service/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/tablebook/reservation-service/internal/api/handlers/confirm_reservation"
	getAvailableTablesHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_available_tables"
	getRequesterReservationsHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_requester_reservations"
	listReservationsHandler "github.com/tablebook/reservation-service/internal/api/handlers/list_reservations"
	processEventHandler "github.com/tablebook/reservation-service/internal/api/handlers/process_event"
	purgeReservationsHandler "github.com/tablebook/reservation-service/internal/api/handlers/purge_reservations"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	"github.com/tablebook/reservation-service/internal/config"
	"github.com/tablebook/reservation-service/internal/conversation"
	notifierIntegration "github.com/tablebook/reservation-service/internal/integrations/notifier"
	"github.com/tablebook/reservation-service/internal/infra/storage"
	guestRepo "github.com/tablebook/reservation-service/internal/infra/storage/guest"
	reservationRepo "github.com/tablebook/reservation-service/internal/infra/storage/reservation"
	"github.com/tablebook/reservation-service/internal/service/cleaner"
	reservationsService "github.com/tablebook/reservation-service/internal/service/reservations"
	createReservationUC "github.com/tablebook/reservation-service/internal/usecase/create_reservation"
	getAvailableTablesUC "github.com/tablebook/reservation-service/internal/usecase/get_available_tables"
	"github.com/tablebook/reservation-service/pkg/logger"
	"github.com/tablebook/reservation-service/pkg/metrics"
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

	log.Info("Starting reservation-service...")
	log.Info("Configuration loaded from config.toml")

	venue := cfg.VenueConfig()
	log.Info("Venue: open=%s close=%s last_booking=%s interval=%dm look_ahead=%dd zones=%d",
		venue.OpenTime, venue.CloseTime, venue.LastBookingTime,
		venue.SlotIntervalMinutes, venue.LookAheadDays, len(venue.Zones))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Применяем схему, включая частичный уникальный индекс активных броней
	if err := storage.Migrate(context.Background(), db); err != nil {
		log.Fatal("Failed to apply database schema: %v", err)
	}
	log.Info("Database schema is up to date")

	// Инициализируем нотификатор
	var (
		createNotifier createReservationUC.Notifier
		statusNotifier reservationsService.Notifier
	)
	if cfg.NATS.Enabled {
		natsNotifier, err := notifierIntegration.NewNATS(cfg.NATS.URL, cfg.NATS.Subject, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		defer natsNotifier.Close()
		createNotifier = natsNotifier
		statusNotifier = natsNotifier
		log.Info("NATS notifier enabled (url=%s, subject=%s)", cfg.NATS.URL, cfg.NATS.Subject)
	} else {
		logNotifier := notifierIntegration.NewLog(log)
		createNotifier = logNotifier
		statusNotifier = logNotifier
		log.Info("NATS disabled, notifications go to log only")
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(db)
	guestRepository := guestRepo.NewRepository(db)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, statusNotifier, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		guestRepository,
		createNotifier,
		venue,
		log,
	)
	getAvailableTablesUseCase := getAvailableTablesUC.NewUseCase(
		reservationRepository,
		venue,
		log,
	)

	if cfg.Metrics.Enabled {
		createReservationUseCase.WithMetrics(
			metricsCollector.ReservationsCreated,
			metricsCollector.ReservationConflicts,
		)
	}

	// Машины состояний диалога
	sessions := conversation.NewMemoryStore()
	userMachine := conversation.NewMachine(
		sessions,
		getAvailableTablesUseCase,
		createReservationUseCase,
		guestRepository,
		reservationsSvc,
		venue,
		log,
	)
	adminMachine := conversation.NewAdminMachine(sessions, reservationsSvc, cfg.IsOperator, log)
	dispatcher := conversation.NewDispatcher(userMachine, adminMachine, cfg.IsOperator)

	// Фоновая очистка просроченных бронирований
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	var sweepCounter prometheus.Counter
	if cfg.Metrics.Enabled {
		sweepCounter = metricsCollector.SweepDeleted
	}
	expirySweep := cleaner.New(
		reservationRepository,
		time.Duration(cfg.Cleanup.IntervalSeconds)*time.Second,
		log,
		sweepCounter,
	)
	go expirySweep.Run(sweepCtx)
	log.Info("Expiry sweep started (interval=%ds)", cfg.Cleanup.IntervalSeconds)

	// Инициализируем handlers
	var eventsCounter *prometheus.CounterVec
	if cfg.Metrics.Enabled {
		eventsCounter = metricsCollector.EventsProcessed
	}
	processEvent := processEventHandler.NewHandler(dispatcher, log, eventsCounter)
	getAvailableTables := getAvailableTablesHandler.NewHandler(getAvailableTablesUseCase, log)
	getRequesterReservations := getRequesterReservationsHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	purgeReservations := purgeReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные столики на (дата, время, зона)
	api.HandleFunc("/available-tables", getAvailableTables.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// События диалога бронирования
	protected.HandleFunc("/events", processEvent.Handle).Methods(http.MethodPost)

	// Бронирования пользователя
	protected.HandleFunc("/users/{userId}/reservations", getRequesterReservations.Handle).Methods(http.MethodGet)

	// --- Операторская панель ---
	operator := protected.PathPrefix("").Subrouter()
	operator.Use(middleware.RequireOperator(cfg.IsOperator))

	operator.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/reservations/stats", listReservations.HandleStats).Methods(http.MethodGet)
	operator.HandleFunc("/reservations/purge", purgeReservations.HandlePreview).Methods(http.MethodGet)
	operator.HandleFunc("/reservations/purge", purgeReservations.HandleExecute).Methods(http.MethodPost)
	operator.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	operator.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновую очистку
	stopSweep()

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
