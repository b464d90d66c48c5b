package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port              string
	JWTSecret         string
	GeminiAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration
	MinSubjects       int
	RegenerateCron    string
	Workspace         string
	AutoMigrate       bool
	LogLevel          string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	Port = GetEnv("PORT", "3000")
	JWTSecret = GetEnv("JWT_SECRET")
	GeminiAPIKey = GetEnv("GEMINI_API_KEY")
	GeminiModel = GetEnv("GEMINI_MODEL", "gemini-2.5-flash")
	GenerationTimeout = time.Duration(GetEnvInt("GENERATION_TIMEOUT_SECONDS", 90)) * time.Second
	MinSubjects = GetEnvInt("TIMETABLE_MIN_SUBJECTS", 5)
	RegenerateCron = strings.TrimSpace(GetEnv("TIMETABLE_REGENERATE_CRON"))
	Workspace = GetEnv("TIMETABLE_WORKSPACE", "default")
	AutoMigrate = GetEnvBool("DB_AUTOMIGRATE", true)
	LogLevel = GetEnv("LOG_LEVEL", "info")

	if JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET belum diset, route admin tidak dijaga!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if GeminiAPIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY belum diset, generate akan memakai fallback.")
	} else {
		log.Println("✅ GEMINI_API_KEY berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvInt: nilai kosong/tidak valid -> default.
func GetEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(GetEnv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s=%q bukan angka, pakai default %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}

func GetEnvBool(key string, defaultValue bool) bool {
	v := strings.TrimSpace(GetEnv(key))
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️ %s=%q bukan boolean, pakai default %t", key, v, defaultValue)
		return defaultValue
	}
	return b
}
