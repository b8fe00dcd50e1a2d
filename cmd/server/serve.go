package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/config"
	"github.com/kavya410004/cultivating-connections/internal/database"
	"github.com/kavya410004/cultivating-connections/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marketplace server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}

		gin.SetMode(cfg.GinMode)

		db, err := database.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		router, err := server.NewRouter(cfg, db, "web/templates/*")
		if err != nil {
			log.Fatal("Failed to build router:", err)
		}

		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting Cultivating Connections on %s", addr)
		log.Fatal(router.Run(addr))
	},
}
