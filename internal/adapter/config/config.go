package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Kafka    *Kafka
	Catalog  *Catalog
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Kafka struct {
	Brokers string `env:"KAFKA_BROKERS"`
	Topic   string `env:"KAFKA_ORDER_TOPIC"`
}

type Catalog struct {
	HostString string `env:"CATALOG_ADDRESS"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var kafka Kafka
	var catalog Catalog
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&kafka.Brokers, "b", "", "Kafka brokers, comma separated (empty disables publishing)")
	flag.StringVar(&kafka.Topic, "t", `orders.events`, "Kafka topic for order events")
	flag.StringVar(&catalog.HostString, "c", "", "Product catalog address")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&kafka)
	if err != nil {
		return nil, fmt.Errorf("error parsing kafka config: %w", err)
	}
	err = env.Parse(&catalog)
	if err != nil {
		return nil, fmt.Errorf("error parsing catalog config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Kafka:    &kafka,
		Catalog:  &catalog,
		App:      &app,
	}

	return &config, nil
}
