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

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/confirm_record"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/get_schedule"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/get_user"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/health"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/list_branches"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/list_slots"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/telegram_webhook"
	"github.com/m04kA/SMC-ClinicBot/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBot/internal/config"
	"github.com/m04kA/SMC-ClinicBot/internal/infra/cache/directory"
	"github.com/m04kA/SMC-ClinicBot/internal/infra/storage/registereduser"
	"github.com/m04kA/SMC-ClinicBot/internal/infra/storage/session"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/infoclinica"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/patientsapi"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/service/telegram"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
	"github.com/m04kA/SMC-ClinicBot/internal/usecase/conversation"
	"github.com/m04kA/SMC-ClinicBot/internal/worker"
	"github.com/m04kA/SMC-ClinicBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBot/pkg/logger"
	"github.com/m04kA/SMC-ClinicBot/pkg/metrics"
	"github.com/m04kA/SMC-ClinicBot/pkg/txmanager"
)

func main() {
	// Переменные окружения из .env (если файл есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to load .env: %v\n", err)
	}

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

	log.Info("Starting SMC-ClinicBot...")

	// Инициализируем метрики (если включены). Методы nil-коллектора ничего не делают.
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Подключаемся к Redis: сессии диалога и кэш справочников
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Создаём контекст с возможностью отмены для управления жизненным циклом горутин
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	// Интеграции с МИС: общий пул соединений для Инфоклиники и API пациентов
	transport := infoclinica.NewTransport()

	clinicClient := infoclinica.NewClient(infoclinica.Options{
		BaseURL:   cfg.InfoClinica.BaseURL,
		Timeout:   time.Duration(cfg.InfoClinica.Timeout) * time.Second,
		Cookies:   cfg.InfoClinica.Cookies,
		UserAgent: cfg.InfoClinica.UserAgent,
	}, transport, metricsCollector)
	log.Info("InfoClinica client initialized (url=%s)", cfg.InfoClinica.BaseURL)

	patientsClient := patientsapi.NewClient(
		cfg.PatientsAPI.URL,
		cfg.PatientsAPI.Login,
		cfg.PatientsAPI.Password,
		time.Duration(cfg.PatientsAPI.Timeout)*time.Second,
		time.Duration(cfg.PatientsAPI.TokenTTL)*time.Second,
		transport,
	)
	log.Info("Patients API client initialized (url=%s)", cfg.PatientsAPI.URL)

	// Хранилища
	userRepo := registereduser.NewRepository(wrappedDB)
	txManager := txmanager.NewTransactionManager(wrappedDB)
	sessionStore := session.NewStore(rdb, time.Duration(cfg.Session.TTL)*time.Second, log)
	directoryCache := directory.NewCache(rdb, time.Duration(cfg.Worker.DirectoryCacheTTL)*time.Second)

	// Сервисы
	clinicSvc := clinic.NewService(clinicClient, directoryCache, clinic.Options{
		SlotMinutes:       cfg.Booking.SlotMinutes,
		OnlineMode:        cfg.Booking.OnlineMode,
		RecordsDaysAhead:  cfg.Booking.RecordsDaysAhead,
		RecordsPageLength: cfg.Booking.RecordsPageLength,
	}, log)
	userSvc := users.NewService(userRepo, patientsClient, txManager, log)
	log.Info("Clinic and user services initialized")

	// Инициализируем Telegram Bot API
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatal("Failed to initialize Telegram Bot API: %v", err)
	}
	log.Info("Telegram Bot API initialized (@%s)", bot.Self.UserName)

	telegramSvc := telegram.NewService(bot)
	if err := telegramSvc.SetCommands([]telegram.Command{
		{Name: conversation.CommandStart, Description: "Главное меню"},
		{Name: conversation.CommandClear, Description: "Начать диалог заново"},
	}); err != nil {
		log.Warn("Failed to set bot commands: %v", err)
	}

	// Диалог с пользователем
	conversationUC := conversation.New(telegramSvc, sessionStore, clinicSvc, userSvc, metricsCollector, log, conversation.Options{
		BranchesPerPage:    cfg.Booking.BranchesPerPage,
		DepartmentsPerPage: cfg.Booking.DepartmentsPerPage,
		DoctorsPerPage:     cfg.Booking.DoctorsPerPage,
		DaysAhead:          cfg.Booking.DaysAhead,
	})
	log.Info("Conversation use case initialized")

	// Определяем режим работы: Webhook или Long Polling
	if cfg.Telegram.WebhookURL != "" {
		log.Info("Using Webhook mode")

		if err := telegramSvc.SetWebhook(cfg.Telegram.WebhookURL); err != nil {
			log.Fatal("Failed to set Telegram webhook: %v", err)
		}
		log.Info("Telegram webhook set to %s", cfg.Telegram.WebhookURL)
	} else {
		log.Info("Using Long Polling mode")

		if err := telegramSvc.DeleteWebhook(); err != nil {
			log.Warn("Failed to delete webhook (may not exist): %v", err)
		}

		pollingHandler := worker.NewPollingHandler(conversationUC, log)

		updatesChan := telegramSvc.GetUpdatesChan(0)
		go pollingHandler.Start(ctx, updatesChan)
		log.Info("Telegram long polling started")
	}

	// Фоновое обновление справочника филиалов
	refresher := worker.NewDirectoryRefresher(
		clinicSvc,
		log,
		time.Duration(cfg.Worker.DirectoryRefreshInterval)*time.Second,
	)
	if err := refresher.Start(); err != nil {
		log.Fatal("Failed to start directory refresher: %v", err)
	}

	// Инициализируем handlers
	healthHandler := health.NewHandler(map[string]health.Check{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}, log)
	telegramWebhookHandler := telegram_webhook.NewHandler(conversationUC, log)
	getUserHandler := get_user.NewHandler(userSvc, log)
	listBranchesHandler := list_branches.NewHandler(clinicSvc, log)
	listSlotsHandler := list_slots.NewHandler(clinicSvc, log)
	getScheduleHandler := get_schedule.NewHandler(clinicSvc, log)
	confirmRecordHandler := confirm_record.NewHandler(userSvc, clinicSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Публичные endpoints
	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/webhook/telegram", telegramWebhookHandler.Handle).Methods(http.MethodPost)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API v1 endpoints
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users/{platform_user_id}", getUserHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{platform_user_id}/records/{schedid}/confirm", confirmRecordHandler.Handle).Methods(http.MethodPost)
	api.HandleFunc("/clinic/branches", listBranchesHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clinic/slots", listSlotsHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clinic/schedule", getScheduleHandler.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	// КРИТИЧНО: Останавливаем Worker ПЕРЕД сервером
	cancelCtx()
	refresher.Stop()
	log.Info("Worker components stopped")

	close(stopMetricsCh)

	// Graceful shutdown HTTP сервера
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
