package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	DefaultPort       = "8080"
	DefaultWebDir     = "web"
	DefaultServerAddr = "ws://localhost:8080/ws"
)

// Config is the process environment shared by both binaries.
type Config struct {
	Port       string
	WebDir     string
	TuningPath string
	ServerAddr string
}

// Load reads an optional .env file and then the environment. A missing .env
// is not an error; a present but unreadable one is.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
		log.Printf("Loaded environment from %s", f)
	}

	return Config{
		Port:       getEnv("PORT", DefaultPort),
		WebDir:     getEnv("WEB_DIR", DefaultWebDir),
		TuningPath: getEnv("TUNING_PATH", ""),
		ServerAddr: getEnv("SERVER_ADDR", DefaultServerAddr),
	}, nil
}

func (c Config) ListenAddr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
