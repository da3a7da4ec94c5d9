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

	cancelAppointmentHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/create_appointment"
	deleteAvailabilityHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/delete_availability"
	getAppointmentHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/get_availability"
	getSlotsHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/get_slots"
	listAppointmentsHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/list_appointments"
	setAvailabilityHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/set_availability"
	updateAppointmentHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/FIT-ScheduleService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/config"
	appointmentRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/availability"
	appointmentsService "github.com/m04kA/FIT-ScheduleService/internal/service/appointments"
	availabilityService "github.com/m04kA/FIT-ScheduleService/internal/service/availability"
	createAppointmentUC "github.com/m04kA/FIT-ScheduleService/internal/usecase/create_appointment"
	getSlotsUC "github.com/m04kA/FIT-ScheduleService/internal/usecase/get_slots"
	rescheduleAppointmentUC "github.com/m04kA/FIT-ScheduleService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/FIT-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/FIT-ScheduleService/pkg/logger"
	"github.com/m04kA/FIT-ScheduleService/pkg/metrics"
	"github.com/m04kA/FIT-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/FIT-ScheduleService/pkg/txmanager"
)

// systemClock источник текущего времени для сервисов
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

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

	log.Info("Starting FIT-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		apptRepository  *appointmentRepo.Repository
		availRepository *availabilityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		availRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		apptRepository = appointmentRepo.NewRepository(db)
		availRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(apptRepository, systemClock{}, log)
	availabilitySvc := availabilityService.NewService(availRepository, txMgr, log)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(availRepository, apptRepository, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(apptRepository, availRepository, txMgr, log)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(apptRepository, txMgr, log)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют заголовки X-User-ID и X-User-Role
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// --- Слоты ---
	// Свободные и занятые слоты тренера на дату
	api.HandleFunc("/trainers/{trainerId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// --- Окна доступности ---
	// Недельное расписание тренера
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Сохранение окон доступности
	api.HandleFunc("/availability", setAvailability.Handle).Methods(http.MethodPost)

	// Удаление окна доступности
	api.HandleFunc("/availability/{windowId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Встречи ---
	// Создание встречи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Список встреч с фильтрацией
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Получение встречи по ID
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Обновление и перенос встречи
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)

	// Смена статуса встречи
	api.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Отмена встречи
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
