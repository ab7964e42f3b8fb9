package main

import (
	"os"
	"os/signal"
	"time"

	"warhorn/bot"
	"warhorn/config"
	"warhorn/dal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	db := dal.InitDB(cfg.DBPath)

	warhorn := bot.New(cfg.Token, cfg.GuildID, db)
	defer warhorn.Shutdown(cfg.GuildID)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
