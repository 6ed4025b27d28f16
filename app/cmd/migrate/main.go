// Command migrate applies the embedded schema migrations.
//
//	migrate [-steps n] [-verbose] up|down|status
package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"session-service/app/config"
	"session-service/app/utils/database"
	"session-service/app/utils/logger"
	"session-service/app/utils/migration"
)

//go:embed migrations
var embedded embed.FS

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back (down only)")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	if err := run(command, *steps, *verbose); err != nil {
		slog.Error("migrate failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(command string, steps int, verbose bool) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	appLogger, err := logger.New(level)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	conn, err := database.NewConnection(&database.Config{
		Host:            cfg.DatabaseHost,
		Port:            parsePort(cfg.DatabasePort),
		User:            cfg.DatabaseUser,
		Password:        cfg.DatabasePassword,
		Database:        cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 15 * time.Minute,
		ConnTimeout:     10 * time.Second,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close()

	// Strip the embed prefix so the migrator sees bare filenames.
	source, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return err
	}
	migrator := migration.NewMigrator(conn.DB(), appLogger, source)

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			return err
		}
		appLogger.Info("migrations up to date")
		return nil

	case "down":
		if steps < 1 {
			steps = 1
		}
		for i := 0; i < steps; i++ {
			if err := migrator.Down(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		appLogger.Info("rolled back", "steps", steps)
		return nil

	case "status":
		return migrator.Status()

	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
}

func parsePort(s string) int {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 5432
	}
	return port
}
