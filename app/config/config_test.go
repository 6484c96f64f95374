package config

import (
	"os"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("unexpected default base url %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.Token != "sk-test" {
		t.Errorf("expected token from env, got %q", cfg.OpenAI.Token)
	}
	if cfg.OpenAI.VisionModel != "gpt-4o-mini" || cfg.OpenAI.ChatModel != "gpt-4o-mini" {
		t.Errorf("unexpected default models %q / %q", cfg.OpenAI.VisionModel, cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.TranscribeModel != "whisper-1" {
		t.Errorf("unexpected default transcribe model %q", cfg.OpenAI.TranscribeModel)
	}
	if cfg.OpenAI.TTSModel != "tts-1" || cfg.OpenAI.TTSVoice != "alloy" {
		t.Errorf("unexpected default tts settings %q / %q", cfg.OpenAI.TTSModel, cfg.OpenAI.TTSVoice)
	}
	if cfg.Capture.IntervalSeconds != 15 {
		t.Errorf("expected default interval 15, got %d", cfg.Capture.IntervalSeconds)
	}
	if cfg.Capture.WarmupSeconds != 3 {
		t.Errorf("expected default warmup 3, got %d", cfg.Capture.WarmupSeconds)
	}
}

func TestLoadEnvPortOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected PORT override 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadMissingTokenFails(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected validation error without a token")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")

	yaml := `
server:
  port: 4000
openai:
  token: sk-from-file
  chat_model: gpt-4o
capture:
  interval_seconds: 30
`
	if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("expected port 4000 from file, got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.Token != "sk-from-file" {
		t.Errorf("expected token from file, got %q", cfg.OpenAI.Token)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o" {
		t.Errorf("expected chat model from file, got %q", cfg.OpenAI.ChatModel)
	}
	if cfg.Capture.IntervalSeconds != 30 {
		t.Errorf("expected interval from file, got %d", cfg.Capture.IntervalSeconds)
	}
	// untouched fields still get defaults
	if cfg.OpenAI.VisionModel != "gpt-4o-mini" {
		t.Errorf("expected default vision model, got %q", cfg.OpenAI.VisionModel)
	}
}
