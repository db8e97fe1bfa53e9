// migrate aplica o revierte las migraciones embebidas del esquema.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [N]   (por defecto 1)
//	go run ./cmd/migrate version
//
// La conexión se toma de la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/postgres"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/config"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer m.Close()

	if err := run(m, os.Args[1:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("migración fallida")
		m.Close()
		os.Exit(1)
	}
}

func run(m *postgres.Migrator, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("pasos inválidos %q: %w", args[1], err)
			}
			steps = n
		}
		return m.Down(steps)
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)
		return nil
	default:
		usage()
		return fmt.Errorf("comando desconocido %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: migrate up | down [N] | version")
}
