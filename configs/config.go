package config

import "os"

type S3 struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type Config struct {
	APIBaseURL           string
	GoogleClientID       string
	GoogleClientSecret   string
	GoogleRedirectURI    string
	PostgresURI          string
	FrontendURL          string
	S3                   S3
	SecretKey            string
	CookieName           string
	DefaultDisplayChanID string
}

func LoadConfig() *Config {
	return &Config{
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8000"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		S3: S3{
			Region:    getEnv("AWS_DEFAULT_REGION", ""),
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Bucket:    getEnv("AWS_S3_BUCKET", ""),
		},
		SecretKey:            getEnv("SECRET_KEY", ""),
		CookieName:           getEnv("COOKIE_NAME", "socials_session"),
		DefaultDisplayChanID: getEnv("DEFAULT_DISPLAY_CHANNEL", "1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
