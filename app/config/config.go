package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Server  Server  `yaml:"server"`
	OpenAI  OpenAI  `yaml:"openai"`
	Capture Capture `yaml:"capture"`
}

type Server struct {
	// Port to listen on, the PORT env var takes precedence
	Port int `yaml:"port" example:"3000"`
}

type OpenAI struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1"`
	// OpenAI token, the OPENAI_API_KEY env var takes precedence
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Model used for screen frame analysis
	VisionModel string `yaml:"vision_model" example:"gpt-4o-mini"`
	// Model used for chat completions
	ChatModel string `yaml:"chat_model" example:"gpt-4o-mini"`
	// Model used for audio transcription
	TranscribeModel string `yaml:"transcribe_model" example:"whisper-1"`
	// Model used for speech synthesis
	TTSModel string `yaml:"tts_model" example:"tts-1"`
	// Voice used for speech synthesis
	TTSVoice string `yaml:"tts_voice" example:"alloy"`
}

type Capture struct {
	// Seconds between automatic frame analyses
	IntervalSeconds int `yaml:"interval_seconds" example:"15"`
	// Seconds before the first early analysis after capture starts
	WarmupSeconds int `yaml:"warmup_seconds" example:"3"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	switch {
	case err == nil:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	case os.IsNotExist(err):
		// config may come entirely from the environment
	default:
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&result)
	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyEnv(cfg *Config) {
	if token := os.Getenv("OPENAI_API_KEY"); token != "" {
		cfg.OpenAI.Token = token
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.VisionModel == "" {
		cfg.OpenAI.VisionModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.TranscribeModel == "" {
		cfg.OpenAI.TranscribeModel = "whisper-1"
	}
	if cfg.OpenAI.TTSModel == "" {
		cfg.OpenAI.TTSModel = "tts-1"
	}
	if cfg.OpenAI.TTSVoice == "" {
		cfg.OpenAI.TTSVoice = "alloy"
	}
	if cfg.Capture.IntervalSeconds == 0 {
		cfg.Capture.IntervalSeconds = 15
	}
	if cfg.Capture.WarmupSeconds == 0 {
		cfg.Capture.WarmupSeconds = 3
	}
}
