package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	RedisAddr       string
	QueueBackend    string
	RateLimitPerMin int

	// Office geofence for check-in.
	OfficeLatitude  float64
	OfficeLongitude float64
	OfficeRadiusKm  float64
}

// Load returns application config populated from environment variables
// with sensible defaults. Geofence defaults match the demo office
// location.
func Load() App {
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8081"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		QueueBackend:    getEnv("QUEUE_BACKEND", "memory"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
		OfficeLatitude:  floatEnv("OFFICE_LAT", 0.32936393472140163),
		OfficeLongitude: floatEnv("OFFICE_LNG", 32.614417541438584),
		OfficeRadiusKm:  floatEnv("OFFICE_RADIUS_KM", 0.5),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}

func floatEnv(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
		log.Printf("invalid float for %s, using fallback %g", key, fallback)
	}
	return fallback
}
