package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airops-service/internal/domain/repository"
	"airops-service/internal/infrastructure/config"
	"airops-service/internal/infrastructure/oauth"
	"airops-service/internal/infrastructure/persistence"
	"airops-service/internal/infrastructure/router"
	"airops-service/internal/infrastructure/seed"
	"airops-service/internal/interface/api"
	"airops-service/internal/interface/gmail"
	storeRepo "airops-service/internal/interface/repository"
	"airops-service/internal/usecase"
	"airops-service/pkg/logger"
	"airops-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	sessionIdleTimeout = 30 * time.Minute
	janitorInterval    = time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Airport Operations Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load flight schedule and reference data
	catalog, err := seed.Load(cfg.FlightSeedFile)
	if err != nil {
		log.Fatal("Failed to load flight seed", "error", err)
	}
	log.Info("Flight schedule loaded", "flights", len(catalog.Flights), "airports", len(catalog.Airports))

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics("airops", registry)

	// Set up repositories. Flights always come from the seed.
	store := storeRepo.NewSessionStore(catalog.Flights)
	var (
		passengers  repository.PassengerRepository = store.Passengers()
		lostItems   repository.LostItemRepository  = store.LostItems()
		logs        repository.LogRepository       = store.Logs()
		sentEmails  repository.SentEmailRepository = store.SentEmails()
		mongoClient *mongo.Client
	)

	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Info("Using in-memory store")
	case config.StoreMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, cfg.MongoDB)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		passengers = storeRepo.NewMongoPassengerRepository(db)
		lostItems = storeRepo.NewMongoLostItemRepository(db)
		logs = storeRepo.NewMongoLogRepository(db)
		sentEmails = storeRepo.NewMongoSentEmailRepository(db)
	default:
		log.Fatal("Unknown store backend", "backend", cfg.StoreBackend)
	}

	// Airport and airline catalogue
	var (
		airports repository.AirportRepository = storeRepo.NewMemoryAirportRepository(catalog.Airports)
		airlines repository.AirlineRepository = storeRepo.NewMemoryAirlineRepository(catalog.Airlines)
	)
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL catalogue")
		gormDB, err := persistence.NewPostgres(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airports = storeRepo.NewGormAirportRepository(gormDB)
		airlines = storeRepo.NewGormAirlineRepository(gormDB)
	}
	directory := usecase.NewFlightDirectory(store.Flights(), airports, airlines)
	if missing, err := directory.CheckCoverage(ctx); err != nil {
		log.Warn("Catalogue coverage check failed", "error", err)
	} else if len(missing) > 0 {
		log.Warn("Schedule codes missing from catalogue", "codes", missing)
	}

	// Set up mail transport
	var mailer repository.Mailer
	switch cfg.EmailProvider {
	case config.ProviderMailgun:
		if cfg.MailgunAPIKey == "" {
			log.Warn("MAILGUN_API_KEY is not set, sends will fail with MISSING_CONFIG")
		}
		mailer = storeRepo.NewMailgunRepository(cfg.MailgunAPIKey, cfg.MailgunDomain, cfg.MailgunBaseURL, cfg.EmailFrom, cfg.SendTimeout, log)
	case config.ProviderGmail:
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		if !gmailOAuth.Configured() {
			log.Fatal("Gmail provider requires GMAIL_CLIENT_ID, GMAIL_CLIENT_SECRET and GMAIL_REFRESH_TOKEN")
		}
		mailer, err = gmail.NewGmailSender(ctx, gmailOAuth.GetTokenSource(ctx), cfg.EmailFrom, log)
		if err != nil {
			log.Fatal("Failed to create Gmail sender", "error", err)
		}
	default:
		log.Fatal("Unknown email provider", "provider", cfg.EmailProvider)
	}
	log.Info("Mail transport ready", "provider", cfg.EmailProvider)

	// Use cases
	dispatcher := usecase.NewEmailDispatcher(ctx, mailer, sentEmails, logs, appMetrics, log.Named("email"), cfg.SendTimeout)

	commands := router.NewCommandRouter(log.Named("router"))
	usecase.RegisterCommands(commands, usecase.CommandDeps{
		Flights:    store.Flights(),
		Passengers: passengers,
		SentEmails: sentEmails,
		Logs:       logs,
		Dispatcher: dispatcher,
		Metrics:    appMetrics,
		Logger:     log.Named("terminal"),
		BagDelay:   cfg.BagEnrichDelay,
	})
	terminal := usecase.NewTerminal(commands, appMetrics, log.Named("terminal"))

	bookings := usecase.NewBookingReader(passengers, store.Flights())
	services := api.Services{
		Terminal:  terminal,
		Flights:   directory,
		Bookings:  bookings,
		CheckIn:   usecase.NewCheckInService(passengers, bookings, dispatcher, logs, log.Named("checkin")),
		LostFound: usecase.NewLostFoundService(lostItems, logs, dispatcher, appMetrics, log.Named("lostfound")),
		Logs:      logs,
	}

	// Close abandoned terminal sessions
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Session janitor stopped")
				return
			case <-ticker.C:
				if closed := terminal.CloseIdle(sessionIdleTimeout); closed > 0 {
					log.Info("Closed idle terminal sessions", "count", closed)
				}
			}
		}
	}()

	// Set up HTTP server
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(services, metricsHandler, log.Named("http")).Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel in-flight sends and background goroutines
	dispatcher.Wait()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Airport Operations Service stopped")
}
