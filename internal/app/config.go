package app

import (
	"strings"
	"time"

	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/utils"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tokenTTLSeconds := utils.GetEnvAsInt("TOKEN_TTL", 7*24*3600, log)

	var origins []string
	if raw := utils.GetEnv("ALLOWED_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:           port,
		JWTSecretKey:   jwtSecretKey,
		TokenTTL:       time.Duration(tokenTTLSeconds) * time.Second,
		AllowedOrigins: origins,
	}
}
