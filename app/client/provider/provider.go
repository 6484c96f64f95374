package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"screenmate/app/config"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const (
	analysisPrompt = "What's happening on this screen?"
	maxReplyTokens = 500
	callTimeout    = 30 * time.Second
)

// Client talks to the hosted multimodal provider. Every AI operation in the
// system (vision, chat, transcription, speech) goes through here.
type Client struct {
	cfg    *config.Config
	client *openai.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	clientConfig := openai.DefaultConfig(cfg.OpenAI.Token)
	clientConfig.BaseURL = cfg.OpenAI.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: callTimeout,
	}

	return &Client{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// AnalyzeImage asks the vision model to describe one JPEG screen frame.
// The payload is the base64 body only, without a data-URI prefix.
// The raw completion is returned so relay callers can pass it through verbatim.
func (c *Client) AnalyzeImage(ctx context.Context, base64Image string) (openai.ChatCompletionResponse, error) {
	return c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.cfg.OpenAI.VisionModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: analysisPrompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: "data:image/jpeg;base64," + base64Image,
							},
						},
					},
				},
			},
			MaxTokens: maxReplyTokens,
		},
	)
}

// Chat runs one completion over the full message list.
func (c *Client) Chat(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
	return c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:     c.cfg.OpenAI.ChatModel,
			Messages:  messages,
			MaxTokens: maxReplyTokens,
		},
	)
}

// Transcribe converts one uploaded audio clip to text. The filename only
// matters for format detection on the provider side.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.client.CreateTranscription(
		ctx,
		openai.AudioRequest{
			Model:    c.cfg.OpenAI.TranscribeModel,
			FilePath: filename,
			Reader:   audio,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription: %w", err)
	}

	return resp.Text, nil
}

// Speak synthesizes speech for the given text and returns the audio bytes.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.client.CreateSpeech(
		ctx,
		openai.CreateSpeechRequest{
			Model: openai.SpeechModel(c.cfg.OpenAI.TTSModel),
			Input: text,
			Voice: openai.SpeechVoice(c.cfg.OpenAI.TTSVoice),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech audio: %w", err)
	}

	return audio, nil
}
