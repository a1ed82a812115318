// Package config loads typed configuration structs from environment
// variables, with optional .env support for local development.
//
// Each package that needs configuration declares its own Config struct
// with `env` tags and loads it through config.Load:
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":3000"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Parsed values are cached per type so every caller observes the same
// configuration regardless of load order.
package config
