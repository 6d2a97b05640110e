package config

import (
	"os"
	"strconv"
	"time"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries everything the services need. It is built once in
// main and handed down; nothing reads the environment after Load.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     []byte
	JWTExpiry     time.Duration
	TaxRatePct    float64 // GST, percent
	PerKmFee      float64 // delivery surcharge per started km beyond the free radius
	BaseFee       float64 // fallback base fee for restaurants without one
	MaxDistanceKm float64 // service radius for restaurant discovery
	ReviewWindow  time.Duration
	RefundWindow  time.Duration
}

func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "food_ordering.db"),
		JWTSecret:     []byte(getEnv("JWT_SECRET", "food_ordering_super_secret_2024")),
		JWTExpiry:     getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		TaxRatePct:    getEnvFloat("TAX_RATE", 5),
		PerKmFee:      getEnvFloat("DELIVERY_FEE_PER_KM", 5),
		BaseFee:       getEnvFloat("DEFAULT_DELIVERY_FEE", 40),
		MaxDistanceKm: getEnvFloat("MAX_DELIVERY_DISTANCE_KM", 10),
		ReviewWindow:  24 * time.Hour,
		RefundWindow:  24 * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// OpenDB connects to sqlite and migrates the schema. The returned
// handle is injected into every service; there is no package global.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
		&models.Payment{},
		&models.Review{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
