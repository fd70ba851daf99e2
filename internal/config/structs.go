package config

import (
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/logger"
)

// Persisted store backends.
const (
	BackendDB     = "db"     // gorm settings table
	BackendKV     = "kv"     // gofiber storage table
	BackendMemory = "memory" // process local, lost on exit
)

// Store selects where the advanced settings blob lives.
type Store struct {
	Backend string
	Slot    string // name of the single slot
	Table   string // kv backend table
}

// Config overall data structure.
type Config struct {
	DevMode   bool   // enable dev mode for development
	EnvFile   string // optional .env file feeding the default source
	DB        DB
	Store     Store
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CaseSensitive bool   // route matching is case-sensitive
	Port          int    // listening port for the webserver
	ShutDownTime  int    // wait time for shutdown
	URL           string // base url for the webserver
}
