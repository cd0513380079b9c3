package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	JWTSecret  string
	JWTExpiry  time.Duration

	SweepInterval    time.Duration
	ReminderInterval time.Duration
	CleanupInterval  time.Duration
	RetentionDays    int

	Notifier           string
	KafkaBrokers       []string
	KafkaReminderTopic string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "smarttodo_user"),
		DBPassword: getEnv("DB_PASSWORD", "smarttodo_pass"),
		DBName:     getEnv("DB_NAME", "smarttodo_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry:  getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),

		SweepInterval:    getEnvAsDuration("SWEEP_INTERVAL", 5*time.Minute),
		ReminderInterval: getEnvAsDuration("REMINDER_INTERVAL", time.Hour),
		CleanupInterval:  getEnvAsDuration("CLEANUP_INTERVAL", 24*time.Hour),
		RetentionDays:    getEnvAsInt("RETENTION_DAYS", 90),

		Notifier:           getEnv("NOTIFIER", "log"),
		KafkaBrokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaReminderTopic: getEnv("KAFKA_REMINDER_TOPIC", "task.reminders"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultVal
}
