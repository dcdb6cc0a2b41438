package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lndb/lndb.go/db"
	"github.com/lndb/lndb.go/db/migrations"
	"github.com/lndb/lndb.go/ibex"
	"github.com/lndb/lndb.go/lib/logging"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/transport"
	"github.com/lndb/lndb.go/tenantdb"
	"github.com/uptrace/bun/migrate"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:          c.SentryDSN,
			IgnoreErrors: []string{"401", "403"},
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// Tenant data directory for the embedded engine
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		logger.Fatalf("Error creating data directory: %v", err)
	}

	// Init the payment provider client
	ibexCfg, err := ibex.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading payment provider config: %v", err)
	}
	ibexClient := ibex.NewClient(ibexCfg)

	svc := &service.LndbService{
		Config:   c,
		DB:       dbConn,
		Logger:   logger,
		Ibex:     ibexClient,
		TenantDB: tenantdb.NewAdapter(dbConn, c.DataDir),
	}

	// init echo server
	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("lndb.go")))
	}
	logMw := transport.CreateLoggingMiddleware(logger)
	strictRateLimitMw := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	transport.RegisterEndpoints(svc, e, strictRateLimitMw, logMw)

	// Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	backgroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backgroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	svc.Logger.Info("Lndb exiting gracefully. Goodbye.")
}
