// Package config loads typed configuration structs from environment
// variables, optionally seeded from dotenv files.
//
// Every component declares its own struct with `env` and `envDefault` tags
// (see auth.Config, pg.Config, httpserver.Config) and the entrypoint loads
// each one:
//
//	var authCfg auth.Config
//	config.MustLoad(&authCfg)
//
// Tests pass variables explicitly instead of touching the process
// environment:
//
//	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
//		"AUTH_TOKEN_SECRET": "test",
//	}))
package config
