package main

import (
	"log"

	"gogeomap/adapters/api"
	"gogeomap/adapters/excel"
	"gogeomap/app"
	"gogeomap/internal"
	"gogeomap/internal/config"

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

	server := api.NewServer(api.APIConfigFrom(appConfig), service, excel.NewDataReader(readerConfig))
	log.Fatal(server.Start())
}
