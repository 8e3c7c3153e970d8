package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"parcels/cmd"
	"parcels/internal/adapters/out/postgres/migrations"
	"parcels/internal/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	command := flag.String("cmd", migrations.CommandUp, "migration command: up, down or status")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	if err := run(*command, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command, envFile string) error {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{
		ServiceName: configs.App.ServiceName + "-migrate",
		Level:       logger.ParseLevel(configs.App.LogLevel),
		Format:      configs.App.LogFormat,
	})

	db, err := sql.Open("postgres", configs.DB.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctx = log.WithField(ctx, "command", command)
	if err = migrations.Run(ctx, db, command); err != nil {
		log.Error(ctx, "migration failed", err)
		return err
	}
	log.Info(ctx, "migration finished")
	return nil
}
