package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEnv                      = "development"
	DefaultPort                     = "8080"
	DefaultAlgorithm                = "HS256"
	DefaultAccessTokenExpireMinutes = 30
	DefaultAPIPrefix                = "/api/v1"
	DefaultProjectName              = "User Service"
	DefaultCORSOrigins              = "*"
	DefaultBcryptCost               = 10
	DefaultDBMaxConns               = 10
)

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Config is built once at startup and never mutated afterwards.
type Config struct {
	Env                      string
	Port                     string
	DatabaseURL              string
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int
	APIPrefix                string
	ProjectName              string
	CORSOrigins              []string
	BcryptCost               int
	DBMaxConns               int
}

// AccessTokenTTL is the lifetime of issued bearer tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// HTTPAddress returns the address the server binds to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

// Load reads the process environment first, then config/.env.<profile>, then
// the defaults above. Missing required keys are fatal.
func Load() *Config {
	env := getEnv("ENV", DefaultEnv)
	src := source{file: readProfile(env)}

	cfg := &Config{
		Env:                      env,
		Port:                     src.get("PORT", DefaultPort),
		DatabaseURL:              src.must("DATABASE_URL"),
		SecretKey:                src.must("SECRET_KEY"),
		Algorithm:                strings.ToUpper(src.get("ALGORITHM", DefaultAlgorithm)),
		AccessTokenExpireMinutes: src.getInt("ACCESS_TOKEN_EXPIRE_MINUTES", DefaultAccessTokenExpireMinutes),
		APIPrefix:                src.get("API_V1_PREFIX", DefaultAPIPrefix),
		ProjectName:              src.get("PROJECT_NAME", DefaultProjectName),
		CORSOrigins:              parseCSV(src.get("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins)),
		BcryptCost:               src.getInt("BCRYPT_COST", DefaultBcryptCost),
		DBMaxConns:               src.getInt("DB_MAX_CONNS", DefaultDBMaxConns),
	}

	if !supportedAlgorithms[cfg.Algorithm] {
		log.Fatalf("Unsupported config: ALGORITHM=%s", cfg.Algorithm)
	}

	return cfg
}

func profileFile(env string) string {
	switch env {
	case "development":
		return ".env.dev"
	case "production":
		return ".env.prod"
	default:
		return ".env." + env
	}
}

func readProfile(env string) map[string]string {
	path := filepath.Join("config", profileFile(env))
	values, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read %s: %v", path, err)
		}
		return map[string]string{}
	}
	return values
}

// source resolves a key against the environment and then the profile file.
type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return strings.TrimSpace(s.file[key])
}

func (s source) get(key, defaultVal string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultVal
}

func (s source) must(key string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func (s source) getInt(key string, defaultVal int) int {
	raw := s.lookup(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnv(key string, defaultVal string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultVal
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{DefaultCORSOrigins}
	}
	return out
}
