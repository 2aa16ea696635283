package main

import "os"

type Config struct {
	Port         string
	KafkaBrokers string
	KafkaTopic   string
}

func LoadConfig() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getenv("KAFKA_TOPIC", "snake.analytics"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
