package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the assistant binaries read from the
// environment. API keys come from env vars only; an optional .env file
// is merged in first.
type Config struct {
	APIKey       string // OPENAI_API_KEY, required
	ChatModel    string // REVA_CHAT_MODEL
	Voice        string // REVA_VOICE, TTS voice name
	DataDir      string // REVA_DATA_DIR, knowledge files
	WhisperModel string // REVA_WHISPER_MODEL, path to ggml model
	ProxyAddr    string // REVA_PROXY, optional SOCKS5 address
	ListenAddr   string // REVA_LISTEN, webhook bind address
}

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

// Load merges the env file (if present) into the environment and reads
// the configuration. The only hard requirement is the API key.
func Load(envFile string) (Config, error) {
	godotenv.Load(envFile)

	cfg := Config{
		APIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:    getenv("REVA_CHAT_MODEL", "gpt-5-nano"),
		Voice:        getenv("REVA_VOICE", "nova"),
		DataDir:      getenv("REVA_DATA_DIR", "data"),
		WhisperModel: getenv("REVA_WHISPER_MODEL", "third_party/whisper.cpp/models/ggml-base.en.bin"),
		ProxyAddr:    os.Getenv("REVA_PROXY"),
		ListenAddr:   getenv("REVA_LISTEN", ":5000"),
	}

	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
