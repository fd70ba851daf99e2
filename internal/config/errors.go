package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not one of sqlite, mysql, postgres.
	ErrUnknownDBEngine = errors.New("toml config db.engine is unknown")

	// ErrUnknownStoreBackend error if config store.backend is not one of db, kv, memory.
	ErrUnknownStoreBackend = errors.New("toml config store.backend is unknown")

	// ErrKVNeedsServerDB error if the kv store backend is combined with sqlite.
	ErrKVNeedsServerDB = errors.New("toml config store.backend kv requires db.engine mysql or postgres")
)
