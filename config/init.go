package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/tracing"
)

type Config struct {
	AppConfig      *AppConfig
	AWSConfig      *AWSConfig
	PipelineConfig *PipelineConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
}

func NewConfig() *Config {
	return &Config{
		AppConfig:      &AppConfig{},
		AWSConfig:      &AWSConfig{},
		PipelineConfig: &PipelineConfig{},
		Logger:         &logger.Config{},
		Tracing:        &tracing.JaegerConfig{},
	}
}

func InitConfig() (*Config, error) {
	config := NewConfig()

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, errors.Wrap(err, "error loading mailparser config")
	}

	return config, nil
}
