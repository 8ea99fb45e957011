package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/ignaguri/oktoberfest-attendance-sub000/cmd/app"
)

// @title           ProstCounter API
// @description     Festival attendance tracking: drink logging, daily totals, group leaderboards, live location sharing.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
