// Command token prints a signed bearer token for local use of the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"minibrain/internal/auth"
)

func main() {
	owner := flag.String("owner", "", "owner id to put in the token subject (required)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	// A missing .env is fine; JWT_SECRET may come from the environment.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if *owner == "" {
		flag.Usage()
		os.Exit(2)
	}

	token, err := auth.NewTokenValidator(secret).Issue(*owner, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
