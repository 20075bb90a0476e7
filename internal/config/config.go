package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything app.Run needs to wire the service. Values come
// from the environment with local-development defaults.
type Config struct {
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string

	// DatabaseDSN switches storage to Postgres when set; the in-memory
	// store is used otherwise.
	DatabaseDSN string

	AMQPURL      string
	BookingQueue string

	SMTPHost string
	SMTPPort int
	MailFrom string
}

func Load() Config {
	return Config{
		Host:              envOr("HOTELS_HTTP_HOST", "localhost"),
		Port:              envOr("HOTELS_HTTP_PORT", "8092"),
		ReadHeaderTimeout: 20, //nolint:gomnd
		LivenessEndpoint:  "/liveness",
		DatabaseDSN:       os.Getenv("HOTELS_DB_DSN"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		BookingQueue:      envOr("BOOKING_QUEUE", "hotels.bookings"),
		SMTPHost:          os.Getenv("HOTELS_SMTP_HOST"),
		SMTPPort:          envIntOr("HOTELS_SMTP_PORT", 1025),
		MailFrom:          envOr("HOTELS_MAIL_FROM", "reception@hotels.local"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envIntOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
