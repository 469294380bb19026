package configs

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/DevelopIT-LTD/escobar-bot/configs/loader"
)

type TelegramConfig struct {
	Token             string `validate:"required"`
	ConnectionTimeout time.Duration
}

type SheetsConfig struct {
	URL     string `validate:"required"`
	Timeout time.Duration
}

type BotConfig struct {
	WebAppURL     string
	PostChannelID int64
	AdminIDs      []int64
	FollowUpDelay time.Duration
	MetricsAddr   string
}

type Config struct {
	TG     TelegramConfig
	Sheets SheetsConfig
	Bot    BotConfig
	Env    string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 30*time.Second),
		},
		Sheets: SheetsConfig{
			URL:     envs["APPS_SCRIPT_URL"],
			Timeout: getEnvAsDuration(envs["APPS_SCRIPT_TIMEOUT"], 10*time.Second),
		},
		Bot: BotConfig{
			WebAppURL:     envs["WEBAPP_URL"],
			PostChannelID: getEnvAsInt64(envs["POST_CHANNEL_ID"], 0),
			AdminIDs:      getEnvAsIDList(envs["ADMIN_IDS"]),
			FollowUpDelay: getEnvAsDuration(envs["FOLLOWUP_DELAY"], 2*time.Second),
			MetricsAddr:   getEnvOr(envs["METRICS_ADDR"], ":8080"),
		},
		Env: *env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	if cfg.TG.Token == "" || cfg.Sheets.URL == "" {
		return fmt.Errorf("missing required configuration")
	}
	if len(cfg.Bot.AdminIDs) == 0 {
		return fmt.Errorf("at least one admin id is required")
	}
	return nil
}

func getEnvOr(strValue, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt64(strValue string, defaultValue int64) int64 {
	const op = "configs.getEnvAsInt64"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(strValue, 10, 64)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsIDList(strValue string) []int64 {
	const op = "configs.getEnvAsIDList"
	if strValue == "" {
		return nil
	}
	parts := strings.Split(strValue, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			log.Printf("%s:Invalid id %q, skipping", op, part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
