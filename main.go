package main

import (
	"context"
	"flag"
	"log"

	"github.com/baffa-m/gamjifoundation/app/service"
	"github.com/baffa-m/gamjifoundation/config"
	"github.com/baffa-m/gamjifoundation/db"
	"github.com/baffa-m/gamjifoundation/route"
	"github.com/baffa-m/gamjifoundation/storage"
)

func main() {
	seed := flag.Bool("seed", false, "seed roles, permissions and the admin account, then exit")
	flag.Parse()

	config.LoadEnv()
	config.Logger()

	db.ConnectDB()

	if *seed {
		if err := db.Seed(); err != nil {
			log.Fatal("Seeding failed:", err)
		}
		return
	}

	var files service.FileStore
	if config.Env.B2AccountID != "" {
		store, err := storage.Init(context.Background(), config.Env.B2AccountID, config.Env.B2AppKey, config.Env.B2Bucket)
		if err != nil {
			log.Fatal("Failed to initialise object storage:", err)
		}
		files = store
	} else {
		log.Println("Warning: B2 credentials not set, uploads disabled")
		files = storage.Disabled{}
	}

	app := config.NewApp()

	route.SetupRoutes(app, db.GetSQL(), db.GetMongo(), db.GetRedis(), files)

	log.Fatal(app.Listen(":" + config.Env.AppPort))
}
