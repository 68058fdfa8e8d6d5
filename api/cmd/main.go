package main

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/velostock/velostock/api/cmd/build/all"
	"github.com/velostock/velostock/app/sdk/adcopy"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/fipeclient"
	"github.com/velostock/velostock/app/sdk/mailer"
	"github.com/velostock/velostock/app/sdk/mux"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/domain/billbus/stores/billdb"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/companybus/stores/companydb"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/domain/costbus/stores/costdb"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/domain/leadbus/stores/leaddb"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/domain/userbus/stores/usercache"
	"github.com/velostock/velostock/business/domain/userbus/stores/userdb"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/domain/vehiclebus/stores/vehicledb"
	"github.com/velostock/velostock/business/sdk/events"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/keystore"
	"github.com/velostock/velostock/foundation/logger"
	"github.com/velostock/velostock/foundation/otel"
)

var build = "develop"

type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3000"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3010"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"*"`
	}
	Auth struct {
		KeysFolder string        `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		ActiveKID  string        `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string        `envconfig:"AUTH_ISSUER" default:"https://velostock.com/auth/"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"velostock"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Kafka struct {
		Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
		Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
		Topic   string   `envconfig:"KAFKA_TOPIC" default:"velostock-events"`
	}
	Fipe struct {
		Host       string        `envconfig:"FIPE_HOST" default:"https://fipe.velostock.com"`
		Timeout    time.Duration `envconfig:"FIPE_TIMEOUT" default:"10s"`
		MaxRetries uint64        `envconfig:"FIPE_MAX_RETRIES" default:"3"`
	}
	AdCopy struct {
		Host       string        `envconfig:"ADCOPY_HOST" default:"https://api.openai.com"`
		APIKey     string        `envconfig:"ADCOPY_API_KEY"`
		Model      string        `envconfig:"ADCOPY_MODEL" default:"gpt-4o-mini"`
		Timeout    time.Duration `envconfig:"ADCOPY_TIMEOUT" default:"30s"`
		MaxRetries uint64        `envconfig:"ADCOPY_MAX_RETRIES" default:"2"`
	}
	SMTP struct {
		Host     string `envconfig:"SMTP_HOST" default:"localhost"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		User     string `envconfig:"SMTP_USER"`
		Password string `envconfig:"SMTP_PASSWORD"`
		From     string `envconfig:"SMTP_FROM" default:"no-reply@velostock.com"`
	}
	Uploads struct {
		DocumentDir string `envconfig:"UPLOADS_DOCUMENT_DIR" default:"/var/lib/velostock/documents"`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST" default:"tempo:4317"`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"VELOSTOCK"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
		Enabled     bool    `envconfig:"TEMPO_ENABLED" default:"true"`
	}
}

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "VELOSTOCK", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "VELOSTOCK"

	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	log.Info(ctx, "startup", "version", cfg.Version)
	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}

	defer db.Close()

	// -------------------------------------------------------------------------
	// Event Support

	var producer *events.Producer

	if cfg.Kafka.Enabled {
		log.Info(ctx, "startup", "status", "initializing event support", "brokers", cfg.Kafka.Brokers)

		producer, err = events.NewProducer(log, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("connecting to kafka: %w", err)
		}

		defer producer.Close()
	}

	var vehiclePublisher vehiclebus.Publisher
	var leadPublisher leadbus.Publisher
	if producer != nil {
		vehiclePublisher = producer
		leadPublisher = producer
	}

	// -------------------------------------------------------------------------
	// Business Cores

	companyBus := companybus.NewCore(log, companydb.NewStore(log, db))
	userBus := userbus.NewCore(usercache.NewStore(log, userdb.NewStore(log, db), 5*time.Minute))
	vehicleBus := vehiclebus.NewCore(vehicledb.NewStore(log, db), vehiclePublisher)
	costBus := costbus.NewCore(costdb.NewStore(log, db))
	leadBus := leadbus.NewCore(leaddb.NewStore(log, db), leadPublisher)
	billBus := billbus.NewCore(billdb.NewStore(log, db))

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ks := keystore.New()

	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	authClient, err := auth.New(auth.Config{
		Log:       log,
		UserBus:   userBus,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
		ActiveKID: cfg.Auth.ActiveKID,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	// -------------------------------------------------------------------------
	// Outbound Clients

	log.Info(ctx, "startup", "status", "initializing outbound clients")

	fipe := fipeclient.New(log, cfg.Fipe.Host, cfg.Fipe.Timeout, cfg.Fipe.MaxRetries)
	adCopy := adcopy.New(log, cfg.AdCopy.Host, cfg.AdCopy.APIKey, cfg.AdCopy.Model, cfg.AdCopy.Timeout, cfg.AdCopy.MaxRetries)

	ml, err := mailer.New(log, mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		return fmt.Errorf("constructing mailer: %w", err)
	}

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        cfg.Tempo.Host,
		ExcludedRoutes: map[string]struct{}{
			"/v1/liveness":  {},
			"/v1/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
		Enabled:     cfg.Tempo.Enabled,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:       cfg.Version.Build,
		Log:         log,
		DB:          db,
		Tracer:      tracer,
		DocumentDir: cfg.Uploads.DocumentDir,
		BusConfig: mux.BusConfig{
			CompanyBus: companyBus,
			UserBus:    userBus,
			VehicleBus: vehicleBus,
			CostBus:    costBus,
			LeadBus:    leadBus,
			BillBus:    billBus,
		},
		AuthConfig: mux.AuthConfig{
			Auth: authClient,
		},
		ClientConfig: mux.ClientConfig{
			Fipe:   fipe,
			AdCopy: adCopy,
			Mailer: ml,
		},
	}

	webAPI := mux.WebAPI(cfgMux,
		all.Routes(),
		mux.WithCORS(cfg.Web.CORSAllowedOrigins),
	)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	cfg.SMTP.Password = "[MASKED]"
	cfg.AdCopy.APIKey = "[MASKED]"

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
