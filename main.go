package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Auto-load ./.env if present before reading vars.
	_ = godotenv.Load()

	loadAuthConfig()

	// Lightweight migrate command: `./calaccess-processed migrate` runs
	// AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		migrateDB()
		fmt.Println("migration completed")
		return
	}

	initDB()

	r := gin.Default()
	setupRoutes(r)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8081"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
