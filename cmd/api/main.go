package main

import (
	"context"

	"leaseos-backend/bootstrap"

	"github.com/rs/zerolog/log"
)

func main() {
	rt, err := bootstrap.Setup()
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	sqlDB, err := rt.DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("database connected")
	if rt.Redis != nil {
		if err := rt.Redis.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Msg("redis connected")
	}

	port := rt.Config.Port
	log.Info().Str("port", port).Str("health", "http://localhost:"+port+"/health/json").Msg("server starting")
	if err := rt.App.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
