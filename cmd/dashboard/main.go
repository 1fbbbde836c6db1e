package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/config"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/dashboard"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/journal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/subscriber"
)

func main() {
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
	gin.SetMode(gin.ReleaseMode)

	store, err := subscriber.New(cfg.SubscribersFile(), cfg.Symbols())
	if err != nil {
		log.Fatal().Err(err).Msg("open subscriber store")
	}

	srv := dashboard.NewServer(cfg, journal.New(cfg.Paths.LogsDir), store)
	if err := srv.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("dashboard server")
	}
}
