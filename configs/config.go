package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type ServerConfig struct {
	Port          string
	SessionSecret string
	SessionName   string
}

type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

type SMSConfig struct {
	Username string
	APIKey   string
	SMSURL   string
	SenderID string
}

// LoadEnv reads a .env file when one exists; in containers the variables are
// expected to come from the environment itself.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func LoadDBConfig() DBConfig {
	return DBConfig{
		Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("POSTGRES_USER", "shop"),
		Password: getEnvOrDefault("POSTGRES_PASSWORD", "shop"),
		Name:     getEnvOrDefault("POSTGRES_DB", "shop"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:          getEnvOrDefault("PORT", "8080"),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", "change-me"),
		SessionName:   getEnvOrDefault("SESSION_NAME", "shopsess"),
	}
}

func LoadOIDCConfig() OIDCConfig {
	return OIDCConfig{
		Issuer:       os.Getenv("OIDC_ISSUER"),
		ClientID:     os.Getenv("OIDC_CLIENT_ID"),
		ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
	}
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
	}
}

func LoadSMSConfig() SMSConfig {
	return SMSConfig{
		Username: os.Getenv("AT_USERNAME"),
		APIKey:   os.Getenv("AT_API_KEY"),
		SMSURL:   getEnvOrDefault("AT_SMS_URL", "https://api.sandbox.africastalking.com/version1/messaging"),
		SenderID: getEnvOrDefault("AT_SENDER_ID", "AFRICASTKNG"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
