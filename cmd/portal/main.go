package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"youthmind-portal/internal/api"
	"youthmind-portal/internal/api/handler"
	"youthmind-portal/internal/config"
	"youthmind-portal/internal/dataset"
	"youthmind-portal/internal/mlclient"
	"youthmind-portal/internal/session"
	"youthmind-portal/internal/store"
	"youthmind-portal/pkg/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := seedAdmin(db); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	files := dataset.NewStore(cfg.UploadDir)
	sessions := session.NewManager()
	ml := mlclient.New(mlclient.Config{
		BaseURL:        cfg.MLBaseURL,
		HealthTimeout:  cfg.HealthTimeout,
		RequestTimeout: cfg.RequestTimeout,
		TrainTimeout:   cfg.TrainTimeout,
	})
	exporter := dataset.NewHistoryExporter(files, db)

	h := handler.New(db, sessions, files, exporter, ml)

	r := router.New()
	api.RegisterRoutes(r, h)
	r.Start(cfg.Addr)
}

// seedAdmin creates the initial admin account from PORTAL_ADMIN_USER and
// PORTAL_ADMIN_PASSWORD when it does not exist yet. Without these set,
// accounts are expected to be provisioned directly in the database.
func seedAdmin(db *store.DB) error {
	username := os.Getenv("PORTAL_ADMIN_USER")
	password := os.Getenv("PORTAL_ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	ctx := context.Background()
	_, err := db.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	email := os.Getenv("PORTAL_ADMIN_EMAIL")
	if email == "" {
		email = username + "@localhost"
	}
	if _, err := db.CreateUser(ctx, username, email, string(hash), session.RoleAdmin); err != nil {
		return err
	}
	log.Printf("seeded admin account %q", username)
	return nil
}
