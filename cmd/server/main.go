package main

import (
	"context"
	"flag"
	"os"
	"owprofile-backend/internal/api"
	"owprofile-backend/internal/client"
	"owprofile-backend/internal/components/chrono"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/lib/serviceutil"
	"time"

	"github.com/joho/godotenv"
)

const report_refresh = "catalog.refresh"

func main() {
	envFile := flag.String("env", ".env", "Optional dotenv file to load before reading the config.")
	configPath := flag.String("config", "", "Path to the json5 config file, defaults to $CONFIG_PATH or config.json5.")
	verbose := flag.Bool("v", false, "Enable verbose logging.")
	flag.Parse()

	// a missing .env is normal outside of development
	_ = godotenv.Load(*envFile)

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	if *configPath == "" {
		*configPath = "config.json5"
	}

	ctx := serviceutil.SignalContext()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	cfg.Verbose = cfg.Verbose || *verbose

	shutdown := InitTelemetry(ctx, cfg)
	defer shutdown()

	tel := telemetry.SlogAPI{}
	fetcher := fetch.NewClient(cfg.FetchOptions(), tel)
	clock := chrono.NewStandardTime()

	newClient := func() (*client.Client, error) {
		loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		return client.New(loadCtx, fetcher, clock, tel, cfg.ClientOptions())
	}

	c, err := newClient()
	if err != nil {
		serviceutil.Fatal("init client", err)
	}
	server := api.NewServer(c, tel, api.Options{AllowedOrigins: cfg.AllowedOrigins})

	if cfg.RefreshCron != "" {
		cron := chrono.NewStandardCron(tel)
		defer cron.Stop()
		err = cron.Cron(cfg.RefreshCron, func() {
			// a failed refresh keeps serving the previous catalog
			refreshed, err := newClient()
			if err != nil {
				tel.ReportBroken(report_refresh, err)
				return
			}
			server.Swap(refreshed)
			tel.ReportDebug("catalog refreshed")
		})
		if err != nil {
			serviceutil.Fatal("schedule catalog refresh", err)
		}
	}

	err = serviceutil.ServeUntilDone(ctx, serviceutil.NewHttpServer(cfg.Port, server.Handler()))
	if err != nil {
		serviceutil.Fatal("serve", err)
	}
}
