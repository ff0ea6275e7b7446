package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	JWTSecret    string
	CachePath    string
	MongoURI     string
	MongoDBName  string
	NATSUrl      string
	AllowOrigins []string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", "supersecretkey"),
		CachePath:    getEnv("CACHE_PATH", "data/noteto.db"),
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDBName:  getEnv("MONGO_DB_NAME", "noteto"),
		NATSUrl:      getEnv("NATS_URL", ""),
		AllowOrigins: []string{getEnv("CORS_ORIGIN", "*")},
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
