// Package logger provides the Zap logger used across the service.
//
// # Design Decisions
//
//   - Injected, not global: New() se llama una sola vez en main y el logger
//     se pasa a cada capa por constructor. No hay singleton.
//   - Context Scoping: cada request lleva su propio logger "scoped" con campos
//     adicionales (request_id, user_id, etc.) sin crear un nuevo core.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//   - Levels: debug, info, warn, error (configurable via config/env).
//
// # Usage
//
// En main.go:
//
//	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
//	defer log.Sync()
//
// En controllers/services (con contexto):
//
//	log := logger.From(ctx)
//	log.Info("profile merged", logger.UserID(userID))
//
// From(ctx) retorna un no-op logger si el middleware no inyectó ninguno, así
// el código de dominio nunca depende de estado global.
package logger
