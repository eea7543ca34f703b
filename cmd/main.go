package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/richard-senior/podds/internal/logger"
	"github.com/richard-senior/podds/pkg/podds"
)

func main() {
	// Configure logging
	logger.SetShowDateTime(true)

	// Log to file so stdout carries only the prediction output
	logger.SetLogOutput('f')

	logger.Info("Starting github.com/richard-senior/podds application")

	if _, err := podds.LoadConfigFromEnv(); err != nil {
		logger.Warn("Could not load environment configuration:", err)
	}

	engine, err := podds.NewPodds()
	if err != nil {
		logger.Error("Engine initialisation failed:", err)
		os.Exit(1)
	}

	predictions, err := engine.Refresh()
	if err != nil {
		logger.Error("Refresh failed:", err)
		os.Exit(1)
	}

	// Emit the fresh predictions on stdout for downstream consumers
	output, err := json.MarshalIndent(predictions, "", "  ")
	if err != nil {
		logger.Error("Could not serialise predictions:", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
}
