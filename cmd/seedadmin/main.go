// Command seedadmin creates an administrator account. The API has no
// registration endpoint, so the first admin (and any later one) is
// inserted with this tool against the same configuration the server uses.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"schooladmin/internal/config"
	"schooladmin/internal/database"
	"schooladmin/internal/repository"
)

func main() {
	username := flag.String("username", "", "login name for the administrator")
	email := flag.String("email", "", "email address (also accepted at login)")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password")
	flag.Parse()
	if *username == "" || *email == "" || *name == "" || *password == "" {
		log.Fatal("all of -username, -email, -name and -password are required")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := repository.NewAdminRepo(db).Create(ctx, *username, *email, *name, *password, cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrAdminExists {
			log.Fatalf("admin %q already exists", *username)
		}
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("created admin %q with id %d", *username, id)
}
