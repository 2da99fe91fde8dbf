package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                    string
	DatabaseURL             string
	AllowOrigins            []string
	LogLevel                string
	LogstashTCPAddr         string
	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOBucketReviews      string
	MinIOPublicURL          string
	ReviewImageMaxBytes     int64
	ReviewImageMaxDimension int
	ReviewImageMaxPixels    int64
	SMTPHost                string
	SMTPPort                int
	SMTPUsername            string
	SMTPPassword            string
	SMTPFrom                string
	BookingRecomputePrice   bool
	EnableSeedRoutes        bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn(".env file not found")
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("REVIEW_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}
	imageDim := 3840
	if v, err := strconv.Atoi(getenv("REVIEW_IMAGE_MAX_DIMENSION", "3840")); err == nil && v > 0 {
		imageDim = v
	}
	imagePixels := int64(40_000_000)
	if v, err := strconv.ParseInt(getenv("REVIEW_IMAGE_MAX_PIXELS", "40000000"), 10, 64); err == nil && v > 0 {
		imagePixels = v
	}
	smtpPort := 587
	if v, err := strconv.Atoi(getenv("SMTP_PORT", "587")); err == nil && v > 0 {
		smtpPort = v
	}

	return Config{
		Port:                    getenv("PORT", "8080"),
		DatabaseURL:             must("DATABASE_URL"),
		AllowOrigins:            splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:                getenv("LOG_LEVEL", "info"),
		LogstashTCPAddr:         getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:           getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:          getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketReviews:      getenv("MINIO_BUCKET_REVIEWS", "tokyo-reviews"),
		MinIOPublicURL:          getenv("MINIO_PUBLIC_URL", ""),
		ReviewImageMaxBytes:     imageMax,
		ReviewImageMaxDimension: imageDim,
		ReviewImageMaxPixels:    imagePixels,
		SMTPHost:                getenv("SMTP_HOST", ""),
		SMTPPort:                smtpPort,
		SMTPUsername:            getenv("SMTP_USERNAME", ""),
		SMTPPassword:            getenv("SMTP_PASSWORD", ""),
		SMTPFrom:                getenv("SMTP_FROM", ""),
		BookingRecomputePrice:   getenv("BOOKING_RECOMPUTE_PRICE", "false") == "true",
		EnableSeedRoutes:        getenv("ENABLE_SEED_ROUTES", "true") == "true",
	}
}

// StorageEnabled reports whether review image uploads can be served.
func (c Config) StorageEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

// MailEnabled reports whether booking confirmations can be sent.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
