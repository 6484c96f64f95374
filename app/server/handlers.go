package server

import (
	"encoding/base64"
	"log/slog"
	"strings"

	"screenmate/app/service/conversation"
	"screenmate/app/service/history"
	"screenmate/app/service/sampler"

	"github.com/gofiber/fiber/v2"
	"github.com/sashabaranov/go-openai"
)

type analyzeRequest struct {
	Base64Image string `json:"base64Image"`
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Base64Image) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "base64Image must be provided",
		})
	}

	resp, err := s.client.AnalyzeImage(c.UserContext(), req.Base64Image)
	if err != nil {
		slog.Error("Analyze relay failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}

type chatRequest struct {
	Messages []openai.ChatCompletionMessage `json:"messages"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil || len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "messages must be provided as a non-empty array",
		})
	}

	resp, err := s.client.Chat(c.UserContext(), req.Messages)
	if err != nil {
		slog.Error("Chat relay failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}

func (s *Server) handleTranscribe(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file must be provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer file.Close()

	transcript, err := s.client.Transcribe(c.UserContext(), fileHeader.Filename, file)
	if err != nil {
		slog.Error("Transcribe relay failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"transcript": transcript})
}

type ttsRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTTS(c *fiber.Ctx) error {
	var req ttsRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text must be provided",
		})
	}

	audio, err := s.client.Speak(c.UserContext(), req.Text)
	if err != nil {
		slog.Error("TTS relay failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")

	return c.Send(audio)
}

func (s *Server) handleSessionStart(c *fiber.Ctx) error {
	sess := s.sessions.StartCapture()

	slog.Info("Capture started", "session", sess.ID)

	return c.JSON(fiber.Map{"id": sess.ID})
}

func (s *Server) handleSessionStop(c *fiber.Ctx) error {
	s.sessions.StopCapture()

	slog.Info("Capture stopped")

	return c.SendStatus(fiber.StatusNoContent)
}

type frameRequest struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Base64Image string `json:"base64Image"`
}

func (s *Server) handleSessionFrame(c *fiber.Ctx) error {
	var req frameRequest
	if err := c.BodyParser(&req); err != nil || req.Base64Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "base64Image must be provided",
		})
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64Image)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "base64Image is not valid base64",
		})
	}

	s.sessions.Current().PushFrame(sampler.Frame{
		Width:  req.Width,
		Height: req.Height,
		JPEG:   data,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

type messageRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSessionMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text must be provided",
		})
	}

	sess := s.sessions.Current()

	result := s.turns.Submit(c.UserContext(), sess.History, sess.Conversation, req.Text)
	if result.Empty {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text must be provided",
		})
	}

	return c.JSON(result)
}

type historyResponse struct {
	Latest       string                 `json:"latest"`
	Entries      []history.Entry        `json:"entries"`
	Conversation []conversation.Message `json:"conversation"`
}

func (s *Server) handleSessionHistory(c *fiber.Ctx) error {
	sess := s.sessions.Current()

	return c.JSON(historyResponse{
		Latest:       sess.History.Latest(),
		Entries:      sess.History.DisplayOrder(),
		Conversation: sess.Conversation.Messages(),
	})
}
