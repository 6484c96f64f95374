package turn

import (
	"context"
	"log/slog"
	"strings"

	"screenmate/app/client/provider"
	"screenmate/app/service/conversation"
	"screenmate/app/service/history"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

type chatClient interface {
	Chat(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error)
}

// Controller runs single chat turns against the session state. It owns no
// state itself, all mutation happens on the passed history and log.
type Controller struct {
	client chatClient
}

func New(di *do.Injector) (*Controller, error) {
	return &Controller{
		client: do.MustInvoke[*provider.Client](di),
	}, nil
}

// Submit runs one turn: refresh the system context from the viewing history,
// append the user turn, call the chat model and record the outcome. An empty
// submission is a no-op. Failures fold into the log as synthetic assistant
// messages, they are never returned as errors; a failed call is terminal for
// the turn and the user must resubmit.
func (c *Controller) Submit(ctx context.Context, hist *history.Store, conv *conversation.Log, rawText string) Result {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return Result{Empty: true}
	}

	conv.RefreshSystem(conversation.BuildContext(hist.Latest(), hist.All()))
	conv.AppendUser(text)

	resp, err := c.client.Chat(ctx, toProviderMessages(conv.Messages()))

	result := normalize(resp, err)
	if result.outcome == outcomeFailed {
		reply := "Error: " + result.reason
		conv.AppendAssistant(reply)

		slog.Error("Chat turn failed", "error", err)

		return Result{Reply: reply, Failed: true}
	}

	conv.AppendAssistant(result.text)

	return Result{Reply: result.text}
}

func toProviderMessages(messages []conversation.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))

	for _, msg := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return out
}
