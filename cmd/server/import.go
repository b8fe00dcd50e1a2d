package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/kavya410004/cultivating-connections/internal/config"
	"github.com/kavya410004/cultivating-connections/internal/database"
	"github.com/kavya410004/cultivating-connections/internal/repository"
	"github.com/kavya410004/cultivating-connections/internal/services"
	"github.com/spf13/cobra"
)

type FarmerImport struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	District string `json:"district"`
	Password string `json:"password"`
}

var (
	importFile  string
	skipInvalid bool
	strictMode  bool
	phoneRegex  = regexp.MustCompile(`^[0-9]{10}$`)
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import farmer accounts from a JSON file",
	Long: `Import farmer accounts from a JSON file, typically an onboarding
list collected by field agents.

Expected JSON format:
[
  {"name": "Kavya", "phone": "9876543210", "district": "Guntur", "password": "changeme"}
]

Accounts whose phone number is already registered are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}

		db, err := database.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		data, err := os.ReadFile(importFile)
		if err != nil {
			log.Fatal("Failed to read import file:", err)
		}

		var imports []FarmerImport
		if err := json.Unmarshal(data, &imports); err != nil {
			log.Fatal("Failed to parse import file:", err)
		}

		farmerRepo := repository.NewFarmerRepository(db)
		buyerRepo := repository.NewBuyerRepository(db)
		authService := services.NewAuthService(farmerRepo, buyerRepo)

		created, skipped := 0, 0
		for _, entry := range imports {
			if !phoneRegex.MatchString(entry.Phone) {
				msg := fmt.Sprintf("invalid phone number %q for %q", entry.Phone, entry.Name)
				if strictMode {
					log.Fatal(msg)
				}
				if !skipInvalid {
					log.Println("Skipping:", msg)
				}
				skipped++
				continue
			}

			_, err := authService.RegisterFarmer(entry.Name, entry.Phone, entry.District, entry.Password, entry.Password)
			if err != nil {
				if err == services.ErrPhoneTaken {
					skipped++
					continue
				}
				if strictMode {
					log.Fatalf("failed to create account for %q: %v", entry.Name, err)
				}
				log.Printf("Skipping %q: %v", entry.Name, err)
				skipped++
				continue
			}
			created++
		}

		log.Printf("Import complete: %d created, %d skipped", created, skipped)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "silently skip entries that fail validation")
	importCmd.Flags().BoolVar(&strictMode, "strict", false, "abort on the first invalid entry")
	importCmd.MarkFlagRequired("file")
}
