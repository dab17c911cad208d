package main

import (
	_ "satici_paneli/docs"
	"satici_paneli/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Satıcı Paneli API
// @version         1.0
// @description     Vendor panel order core (lifecycle + dashboard) backed by DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
