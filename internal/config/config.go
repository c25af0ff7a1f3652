package config

import (
	"time"

	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/utils"
)

// Config is built once at process start and handed to constructors. Services
// never read the environment themselves.
type Config struct {
	Port string

	Postgres PostgresConfig
	Auth     AuthConfig
	Groq     GroqConfig
	Bucket   BucketConfig
	Mail     MailConfig
	PDF      PDFConfig

	AllowedOrigins []string
	FrontendURL    string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type AuthConfig struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type BucketConfig struct {
	Name            string
	CredentialsFile string
	CDNDomain       string
}

type MailConfig struct {
	APIKey    string
	BaseURL   string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

type PDFConfig struct {
	RenderTimeout time.Duration
}

func Load(log *logger.Logger) Config {
	accessTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)
	resetTTL := utils.GetEnvAsInt("RESET_TOKEN_TTL", 3600, log)
	groqTimeout := utils.GetEnvAsInt("GROQ_TIMEOUT_SECONDS", 90, log)
	mailTimeout := utils.GetEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 30, log)
	pdfTimeout := utils.GetEnvAsInt("PDF_RENDER_TIMEOUT_SECONDS", 60, log)

	return Config{
		Port: utils.GetEnv("PORT", "8080", log),
		Postgres: PostgresConfig{
			Host:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:     utils.GetEnv("POSTGRES_PORT", "5432", log),
			User:     utils.GetEnv("POSTGRES_USER", "postgres", log),
			Password: utils.GetEnv("POSTGRES_PASSWORD", "", nil),
			Name:     utils.GetEnv("POSTGRES_NAME", "notemind", log),
		},
		Auth: AuthConfig{
			JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", nil),
			AccessTokenTTL:  time.Duration(accessTTL) * time.Second,
			RefreshTokenTTL: time.Duration(refreshTTL) * time.Second,
			ResetTokenTTL:   time.Duration(resetTTL) * time.Second,
		},
		Groq: GroqConfig{
			APIKey:  utils.GetEnv("GROQ_API_KEY", "", nil),
			BaseURL: utils.GetEnv("GROQ_BASE_URL", "https://api.groq.com", log),
			Model:   utils.GetEnv("GROQ_MODEL", "llama-3.3-70b-versatile", log),
			Timeout: time.Duration(groqTimeout) * time.Second,
		},
		Bucket: BucketConfig{
			Name:            utils.GetEnv("GCS_BUCKET_NAME", "", log),
			CredentialsFile: utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "", log),
			CDNDomain:       utils.GetEnv("CDN_DOMAIN", "", log),
		},
		Mail: MailConfig{
			APIKey:    utils.GetEnv("SENDGRID_API_KEY", "", nil),
			BaseURL:   utils.GetEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com", log),
			FromEmail: utils.GetEnv("SENDGRID_FROM_EMAIL", "noreply@notemind.app", log),
			FromName:  utils.GetEnv("SENDGRID_FROM_NAME", "NoteMind", log),
			Timeout:   time.Duration(mailTimeout) * time.Second,
		},
		PDF: PDFConfig{
			RenderTimeout: time.Duration(pdfTimeout) * time.Second,
		},
		AllowedOrigins: []string{
			utils.GetEnv("FRONTEND_ORIGIN", "http://localhost:5173", log),
			"http://localhost:3000",
			"http://localhost:5174",
		},
		FrontendURL: utils.GetEnv("FRONTEND_URL", "http://localhost:5173", log),
	}
}
