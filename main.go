package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/sverdle/apps/go-server/internal/cookie"
	"github.com/robalobadob/sverdle/apps/go-server/internal/httpserver"
	"github.com/robalobadob/sverdle/apps/go-server/internal/store"
	"github.com/robalobadob/sverdle/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	production := getEnv("NODE_ENV", "development") == "production"
	if !production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, allowed := words.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	st := store.NewMemoryStore()
	if path := os.Getenv("DB_PATH"); path != "" {
		db, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to open results database")
		}
		defer db.Close()
		st = db
	}

	secret := os.Getenv("APP_SECRET")
	if secret == "" {
		log.Warn().Msg("APP_SECRET not set; game cookies are stored unsealed")
	}
	sealer, err := cookie.NewSealer(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to derive cookie key")
	}

	srv := httpserver.New(httpserver.Config{
		ClientOrigin: os.Getenv("CLIENT_ORIGIN"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
	}, st, cookie.NewJar(sealer, production))

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
