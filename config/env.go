package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "skirmish"
	defaultRedisAddr = "localhost:6379"
	defaultJWTSecret = "change-me-in-production"
	defaultTokenTTL  = "1h"
	defaultAppPort   = "8080"
	defaultAppEnv    = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once; later calls are no-ops.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":      defaultMongoURI,
		"MONGO_DB":       defaultMongoDB,
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"JWT_SECRET":     defaultJWTSecret,
		"TOKEN_TTL":      defaultTokenTTL,
		"BCRYPT_COST":    "10",
		"RATE_LIMIT":     "300",
		"RATE_WINDOW":    "1m",
		"APP_PORT":       defaultAppPort,
		"APP_ENV":        defaultAppEnv,
		"LOG_MONGO":      "false",
	}
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDB() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

// TokenTTL returns the access-token lifetime (default 1h).
func TokenTTL() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("TOKEN_TTL", defaultTokenTTL))
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// BcryptCost returns the bcrypt cost factor (default 10).
func BcryptCost() int {
	_ = Load()
	n, err := strconv.Atoi(get("BCRYPT_COST", "10"))
	if err != nil || n < 4 || n > 31 {
		return 10
	}
	return n
}

// RateLimit returns the request ceiling per rate window (default 300).
func RateLimit() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT", "300"))
	if err != nil || n <= 0 {
		return 300
	}
	return n
}

// RateWindow returns the sliding window for rate limiting (default 1m).
func RateWindow() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("RATE_WINDOW", "1m"))
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// LogMongo reports whether log records should also be written to MongoDB.
func LogMongo() bool {
	_ = Load()
	return strings.EqualFold(get("LOG_MONGO", "false"), "true")
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
