package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// The write endpoints are used by the ingestion pipeline only, so credentials
// are env-configured rather than stored: the schema holds filing data, not
// user accounts.
var (
	jwtSecret []byte
	authUser  string
	authHash  []byte
)

var errInvalidCredentials = errors.New("invalid credentials")

func loadAuthConfig() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	authUser = os.Getenv("API_USER")
	if authUser == "" {
		authUser = "ingest"
	}
	if v := os.Getenv("API_PASSWORD_HASH"); v != "" {
		authHash = []byte(v)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("ingest123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash fallback password:", err)
	}
	authHash = hash
	log.Printf("API_PASSWORD_HASH not set; using development credentials %s/ingest123", authUser)
}

// Authenticate checks the env-configured writer credentials.
func Authenticate(username, password string) error {
	if username != authUser {
		return errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(authHash, []byte(password)); err != nil {
		return errInvalidCredentials
	}
	return nil
}

func issueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(12 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}
