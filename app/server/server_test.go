package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"screenmate/app/client/provider"
	"screenmate/app/config"
	"screenmate/app/service/session"
	"screenmate/app/service/turn"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	var appCtx context.Context = context.Background()
	do.ProvideValue(di, appCtx)
	do.ProvideValue(di, &config.Config{
		Server: config.Server{Port: 0},
		OpenAI: config.OpenAI{
			BaseURL: "http://127.0.0.1:0/v1",
			Token:   "sk-test",
		},
		Capture: config.Capture{IntervalSeconds: 15, WarmupSeconds: 3},
	})
	do.Provide(di, provider.NewClient)
	do.Provide(di, session.New)
	do.Provide(di, turn.New)
	do.Provide(di, New)

	return do.MustInvoke[*Server](di)
}

func doRequest(t *testing.T, s *Server, method, path, contentType, body string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	return resp.StatusCode, data
}

func TestAnalyzeRejectsMissingImage(t *testing.T) {
	s := newTestServer(t)

	status, body := doRequest(t, s, "POST", "/analyze", "application/json", `{}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if !strings.Contains(string(body), "error") {
		t.Errorf("expected error body, got %s", body)
	}
}

func TestChatRejectsMissingMessages(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty array", `{"messages":[]}`},
		{"non-array", `{"messages":"hello"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doRequest(t, s, "POST", "/chat", "application/json", tt.body)
			if status != fiber.StatusBadRequest {
				t.Errorf("expected 400, got %d", status)
			}
		})
	}
}

func TestTranscribeRejectsMissingFile(t *testing.T) {
	s := newTestServer(t)

	status, _ := doRequest(t, s, "POST", "/transcribe", "application/json", `{}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestTTSRejectsEmptyText(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{}`, `{"text":"   "}`} {
		status, _ := doRequest(t, s, "POST", "/tts", "application/json", body)
		if status != fiber.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, status)
		}
	}
}

func TestSessionFrameRoundTrip(t *testing.T) {
	s := newTestServer(t)

	status, _ := doRequest(t, s, "POST", "/api/session/frame", "application/json", `{"base64Image":"!!!"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400 for invalid base64, got %d", status)
	}

	payload := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF})
	status, _ = doRequest(t, s, "POST", "/api/session/frame", "application/json",
		`{"width":800,"height":600,"base64Image":"`+payload+`"}`)
	if status != fiber.StatusNoContent {
		t.Errorf("expected 204, got %d", status)
	}

	frame, ok := s.sessions.Current().CurrentFrame()
	if !ok {
		t.Fatal("expected a stored frame")
	}
	if frame.Width != 800 || frame.Height != 600 || len(frame.JPEG) != 3 {
		t.Errorf("unexpected stored frame: %+v", frame)
	}
}

func TestSessionMessageRejectsEmptyText(t *testing.T) {
	s := newTestServer(t)

	status, _ := doRequest(t, s, "POST", "/api/session/message", "application/json", `{"text":"  "}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if s.sessions.Current().Conversation.Len() != 0 {
		t.Error("expected conversation untouched by empty submission")
	}
}

func TestSessionHistoryEmpty(t *testing.T) {
	s := newTestServer(t)

	status, body := doRequest(t, s, "GET", "/api/session/history", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var resp historyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if resp.Latest != "" || len(resp.Entries) != 0 {
		t.Errorf("expected empty history, got %+v", resp)
	}
}

func TestSessionStartStop(t *testing.T) {
	s := newTestServer(t)

	status, body := doRequest(t, s, "POST", "/api/session/start", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(body), s.sessions.Current().ID) {
		t.Errorf("expected session id in body, got %s", body)
	}

	status, _ = doRequest(t, s, "POST", "/api/session/stop", "", "")
	if status != fiber.StatusNoContent {
		t.Errorf("expected 204, got %d", status)
	}
}
