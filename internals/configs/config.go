// internals/configs/config.go
package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var JWTSecret string

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

/* =========================================================
   Settings

   Typed configuration passed explicitly into the features
   that need it. Business logic never reads the environment
   directly.
========================================================= */

type Settings struct {
	// Presentation / notifications
	CurrencySymbol   string
	FrontendURL      string
	AdminEmail       string
	SupportPhone     string
	DefaultFromEmail string
	SendgridAPIKey   string

	// Digital Samba (meeting room provisioner)
	DigitalSambaTeamID       string
	DigitalSambaDeveloperKey string
	DigitalSambaAPIURL       string
}

func LoadSettings() Settings {
	return Settings{
		CurrencySymbol:   GetEnv("CURRENCY_SYMBOL", "R"),
		FrontendURL:      GetEnv("FRONTEND_URL", "http://localhost:5173"),
		AdminEmail:       GetEnv("ADMIN_EMAIL", "support@quest4knowledge.co.za"),
		SupportPhone:     GetEnv("SUPPORT_PHONE", ""),
		DefaultFromEmail: GetEnv("DEFAULT_FROM_EMAIL", "noreply@quest4knowledge.co.za"),
		SendgridAPIKey:   GetEnv("SENDGRID_API_KEY"),

		DigitalSambaTeamID:       GetEnv("DIGITAL_SAMBA_TEAM_ID"),
		DigitalSambaDeveloperKey: GetEnv("DIGITAL_SAMBA_DEVELOPER_KEY"),
		DigitalSambaAPIURL:       GetEnv("DIGITAL_SAMBA_API_URL", "https://api.digitalsamba.com/api/v1"),
	}
}
