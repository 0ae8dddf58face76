package main

import (
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/anthonyjpesce/calaccess-processed/models"
	"github.com/anthonyjpesce/calaccess-processed/pkg/form460"
)

var (
	db      *gorm.DB
	filings *form460.Store
)

func initDB() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This service requires a Postgres DSN in DB_DSN.")
	}
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the store maps to its error taxonomy.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	useDB(gdb)

	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	if shouldAutoMigrate() {
		migrateDB()
	}
}

// useDB installs the shared handle the handlers use; tests call it directly
// with an in-memory database.
func useDB(gdb *gorm.DB) {
	db = gdb
	filings = form460.NewStore(gdb)
}

func shouldAutoMigrate() bool {
	switch strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")) {
	case "false", "0", "no":
		return false
	}
	return true
}

func migrateDB() {
	// Migrate entities individually so a failure on one doesn't block others.
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}
}
