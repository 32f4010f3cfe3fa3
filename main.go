package main

import (
	"log"

	_ "uiforge/docs"
	"uiforge/internal/app"
)

// @title uiforge API
// @version 1.0
// @description Backend for the uiforge component studio: accounts, sessions, AI generation and previews.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
