// Command issue-token mints a bearer token accepted by the chat server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sellerchat/internal/config"
	"sellerchat/internal/domain"
	"sellerchat/internal/security"
)

func main() {
	userID := flag.String("user", "", "user id (required)")
	username := flag.String("name", "", "display name")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: issue-token -user <id> [-name <username>] [-ttl 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	token, err := tokens.Issue(domain.Identity{UserID: *userID, Username: *username}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
