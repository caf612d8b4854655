package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"users-tasks-service/config"
	"users-tasks-service/database"
	"users-tasks-service/server"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run: start | schema")
	configFlag := flag.String("config", "config.yaml", "Configuration file (environment variables are used when it is missing)")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: go run main.go --command <command-name> [--config config.yaml]")
		os.Exit(1)
	}

	cfg := config.MustLoad(*configFlag)

	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	switch *commandFlag {
	case "start":
		server.StartServer(cfg)
	case "schema":
		dbConn, err := database.Open(context.Background(), cfg.Database)
		if err != nil {
			logger.Error("Error while applying schema", zap.Error(err))
			os.Exit(1)
		}
		dbConn.Close()
		logger.Info("Schema applied", zap.String("driver", cfg.Database.Driver))
	default:
		fmt.Printf("Unknown command %q\n", *commandFlag)
		os.Exit(1)
	}
}
