package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/collector"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/config"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/journal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/notifier"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/pipeline"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/recorder"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/scheduler"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/subscriber"
)

func main() {
	listFlag := flag.Bool("list", false, "print the ticker registry and exit")
	daemonFlag := flag.Bool("daemon", false, "run the daily schedule instead of a single prediction")
	flag.Parse()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if *listFlag {
		printRegistry(cfg)
		return
	}

	// Fetcher per configured provider.
	var fetcher collector.Fetcher
	switch cfg.Data.Provider {
	case "csv":
		fetcher = collector.NewFileFetcher(cfg.Data.CSVDir)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Data.Proxy)
	}
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	store, err := subscriber.New(cfg.SubscribersFile(), cfg.Symbols())
	if err != nil {
		log.Fatal().Err(err).Msg("open subscriber store")
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	mailer := notifier.NewMailer(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.Sender, cfg.SMTP.Password)
	p := pipeline.New(cfg, fetcher, journal.New(cfg.Paths.LogsDir), store, mailer, rec)

	if *daemonFlag {
		runDaemon(cfg, p)
		return
	}

	// One-shot: positional symbol > TICKER env > AAPL.
	symbol := flag.Arg(0)
	if symbol == "" {
		symbol = os.Getenv("TICKER")
	}
	if symbol == "" {
		symbol = "AAPL"
	}

	result, sig, err := p.Run(symbol)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", symbol).Msg("run failed")
	}

	fmt.Printf("%s (%s)\n", result.Ticker, result.CompanyName)
	fmt.Printf("  current   : $%.2f\n", result.CurrentPrice)
	fmt.Printf("  predicted : $%.2f\n", result.PredictedPrice)
	fmt.Printf("  change    : $%.2f (%.2f%%)\n", result.PriceChange, result.PriceChangePct)
	fmt.Printf("  signal    : %s\n", sig)
}

func runDaemon(cfg *config.Config, p *pipeline.Pipeline) {
	sched := scheduler.NewScheduler(p, cfg.Symbols())
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatal().Err(err).Msg("register schedule")
	}
	sched.Start()
	defer sched.Stop()

	// Metrics endpoint for the daemon; the dashboard binary serves its own.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
	go func() {
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server")
		}
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing daily batch now")
		go sched.RunBatch()
	}

	log.Info().Str("schedule", cfg.Schedule.DailyCron).Msg("daemon running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	srv.Close()
}

func printRegistry(cfg *config.Config) {
	fmt.Printf("\n  %-8s %-32s %s\n", "Ticker", "Company", "Sector")
	fmt.Println("  " + "──────────────────────────────────────────────────────────────")
	for _, info := range cfg.Tickers {
		fmt.Printf("  %-8s %-32s %s\n", info.Symbol, info.Name, info.Sector)
	}
	fmt.Println()
}
