package main

import (
	"os"

	"coating/config"
	"coating/helper"
	"coating/shared/logger"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop|version"

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 { //nolint:mnd
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()
	logger.Configure(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg(usage)
	}
}
