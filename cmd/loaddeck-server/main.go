// LoadDeck server - web form and JSON API for the trailer floor planner.
//
// Environment (also read from a .env file in the working directory):
//   LOADDECK_ADDR     listen address, overrides the config file
//   LOADDECK_CONFIG   config file (default ~/.loaddeck/config.json)
//   LOADDECK_INVENTORY trailer inventory file (default ~/.loaddeck/inventory.json)
//   LOADDECK_DEBUG    when set, error logs carry stack traces
//   GIN_MODE          gin mode, "release" in production

package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/piwi3910/LoadDeck/internal/project"
	"github.com/piwi3910/LoadDeck/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := project.LoadAppConfig(getEnv("LOADDECK_CONFIG", project.DefaultConfigPath()))
	if err != nil {
		log.Fatal(err)
	}

	inv, err := loadInventory(os.Getenv("LOADDECK_INVENTORY"))
	if err != nil {
		log.Fatal(err)
	}

	s, err := server.New(cfg, inv)
	if err != nil {
		log.Fatal(err)
	}

	addr := getEnv("LOADDECK_ADDR", cfg.ListenAddr)
	log.Printf("Server listening addr=%s trailer=%q strategy=%s presets=%d",
		addr, cfg.DefaultTrailer.Name, cfg.DefaultStrategy, len(inv.Trailers))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func loadInventory(path string) (model.Inventory, error) {
	if path != "" {
		return project.LoadInventory(path)
	}
	inv, _, err := project.LoadOrCreateInventory()
	return inv, err
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
