package main

import (
	"io"
	"log"
	"os"

	"dealerlot/internal/config"
	applog "dealerlot/internal/log"
	"dealerlot/internal/repos"
	"dealerlot/internal/server"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AdminPassword != "" {
		if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal(err)
		}
		applog.Event("seed.admin", nil, map[string]any{"email": cfg.AdminEmail})
	} else {
		log.Printf("[warn] ADMIN_PASSWORD not set; admin login is disabled until an account exists")
	}

	app, err := server.New(db, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Fatal(app.Listen(":" + cfg.Port))
}
