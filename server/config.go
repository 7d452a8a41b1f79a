package server

import "time"

// Config carries the runtime options of the HTTP server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 5 * time.Second,
	}
}
