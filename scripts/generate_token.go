//go:build ignore

// Mints a development session token signed with SESSION_SECRET.
//
//	go run scripts/generate_token.go -sub user-1 -email dev@example.com -admin
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/pkg/auth"
	"github.com/golang-jwt/jwt/v5"
)

func main() {
	sub := flag.String("sub", "dev-user", "user id (token subject)")
	email := flag.String("email", "dev@example.com", "email claim")
	first := flag.String("first", "Dev", "first name claim")
	last := flag.String("last", "User", "last name claim")
	admin := flag.Bool("admin", false, "grant admin access")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	token, err := auth.NewJWTManager(cfg.JWT).GenerateDevToken(auth.Claims{
		Email:            *email,
		FirstName:        *first,
		LastName:         *last,
		IsAdmin:          *admin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: *sub},
	})
	if err != nil {
		log.Fatal("Error generating token:", err)
	}

	fmt.Println(token)
}
