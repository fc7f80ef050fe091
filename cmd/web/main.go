package main

import (
	"log"

	"github.com/joho/godotenv"

	"plantpal_backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	app.Run()
}
