package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	AppPort     string
	DBDSN       string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	JWTSecret   string
	B2AccountID string
	B2AppKey    string
	B2Bucket    string
}

var Env EnvConfig

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	Env.AppPort = getenv("APP_PORT", "3000")
	Env.DBDSN = os.Getenv("DB_DSN")
	Env.MongoURI = os.Getenv("MONGO_URI")
	Env.MongoDB = os.Getenv("MONGO_DB_NAME")
	Env.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	Env.JWTSecret = os.Getenv("JWT_SECRET")
	Env.B2AccountID = os.Getenv("B2_ACCOUNT_ID")
	Env.B2AppKey = os.Getenv("B2_APP_KEY")
	Env.B2Bucket = os.Getenv("B2_BUCKET")
}

func GetJWTSecret() string {
	if Env.JWTSecret != "" {
		return Env.JWTSecret
	}
	return os.Getenv("JWT_SECRET")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
