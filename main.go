package main

import (
	"log"

	"gogeomap/adapters/api"
	"gogeomap/adapters/excel"
	"gogeomap/app"
	"gogeomap/internal"
	"gogeomap/internal/config"
	"gogeomap/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.SetDefaultLevel(appConfig.Logging.Level)

	service, err := app.NewMapSetService(app.MapSetServiceConfigFrom(appConfig))
	if err != nil {
		log.Fatalf("Failed to create map-set service: %v", err)
	}

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxBytes = appConfig.Upload.MaxUploadBytes()
	reader := excel.NewDataReader(readerConfig)

	server, err := ui.NewServer(appConfig, service, reader)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// The JSON API shares the service and reader with the upload page
	if appConfig.Server.APIPort != "" {
		apiServer := api.NewServer(api.APIConfigFrom(appConfig), service, reader)
		go func() {
			if err := apiServer.Start(); err != nil {
				log.Printf("API server failed: %v", err)
			}
		}()
	}

	log.Printf("Starting gogeomap server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
