package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	LogLevel    string `yaml:"LOG_LEVEL"`
	UploadMaxMB string `yaml:"UPLOAD_MAX_MB"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Redis (OTP store)
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`

	// AI chat service
	AIServiceURL string `yaml:"AI_SERVICE_URL"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// GetConfig returns the value for key. A non-empty environment variable with
// the same name wins over config.yaml.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_LEVEL":
		return config.LogLevel
	case "UPLOAD_MAX_MB":
		return config.UploadMaxMB
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AI_SERVICE_URL":
		return config.AIServiceURL
	default:
		return ""
	}
}

// GetConfigOr is GetConfig with a fallback for unset keys.
func GetConfigOr(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}
