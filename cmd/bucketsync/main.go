package main

import (
	"os"

	"bucketsync/internal/logger"

	// Explicitly import backend implementations to ensure their init() functions run and they register themselves
	_ "bucketsync/pkg/storage/gcs"
	_ "bucketsync/pkg/storage/localfs"
	_ "bucketsync/pkg/storage/s3"
)

func main() {
	log, level := logger.NewLogger()

	app, err := newApp(log, level)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	Execute(app)
}
