package main

import (
	"flag"

	"github.com/pau-arandia/goblog/config"
	"github.com/pau-arandia/goblog/models"
	"github.com/pau-arandia/goblog/routes"
	"github.com/pau-arandia/goblog/utils"
)

func main() {
	initDB := flag.Bool("init-db", false, "drop and recreate the database schema, then exit")
	flag.Parse()

	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{})

	if *initDB {
		if err := config.ResetDatabase(db, &models.User{}, &models.Post{}); err != nil {
			utils.Sugar.Fatalf("failed to initialize database: %v", err)
		}
		utils.Sugar.Info("Initialized the database.")
		return
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
