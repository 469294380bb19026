package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/configs/loader/dotEnvLoader"
	"github.com/DevelopIT-LTD/escobar-bot/internal/catalog"
	"github.com/DevelopIT-LTD/escobar-bot/internal/delivery/telegram"
	"github.com/DevelopIT-LTD/escobar-bot/internal/delivery/webform"
	"github.com/DevelopIT-LTD/escobar-bot/internal/flow"
	"github.com/DevelopIT-LTD/escobar-bot/internal/render"
	"github.com/DevelopIT-LTD/escobar-bot/internal/repository/sessions"
	"github.com/DevelopIT-LTD/escobar-bot/internal/repository/sheets"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/logger"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	prometheus.Init()

	vacancies := catalog.New()
	store := sessions.NewStore()
	sink := sheets.NewClient(cfg, log)
	renderer := render.New(cfg.Bot.WebAppURL)
	engine := flow.NewEngine(cfg, vacancies, sink, store, renderer, log)

	http.Handle("/metrics", promhttp.Handler())
	http.Handle("/webapp", webform.NewHandler(engine, log))
	go http.ListenAndServe(cfg.Bot.MetricsAddr, nil)
	log.Info("Starting http at " + cfg.Bot.MetricsAddr)

	bot, err := telegram.NewBot(cfg, engine, store, log)
	if err != nil {
		log.Error("failed to create bot:", "error", err)
		os.Exit(1)
	}
	log.Info("Starting bot")
	go bot.Run()
	<-done
	log.Info("Shutting down bot")

	bot.Stop()
	log.Info("Service stopped")
}
