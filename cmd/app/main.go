package main

import (
	"log"
	"os"

	"github.com/andreyxaxa/Image-To-3D/config"
	"github.com/andreyxaxa/Image-To-3D/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// Config: CONVERTER_ENDPOINT and CONVERTER_TOKEN come from the deployment,
	// optionally through an env file.
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil {
		err = godotenv.Load(envFile)
		if err != nil {
			log.Fatalf("config error: %s", err)
		}
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config error: %s", err)
	}

	// Run
	app.Run(cfg)
}
