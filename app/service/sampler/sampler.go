package sampler

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"
	"time"

	"screenmate/app/config"
	"screenmate/app/service/history"

	"github.com/sashabaranov/go-openai"
)

const noAnalysisPlaceholder = "No analysis available."

type analyzer interface {
	AnalyzeImage(ctx context.Context, base64Image string) (openai.ChatCompletionResponse, error)
}

// Sampler periodically pulls the newest frame from its source, sends it for
// analysis and appends the result to the viewing history. One early sample
// runs shortly after start, then one per interval.
type Sampler struct {
	interval time.Duration
	warmup   time.Duration
	source   FrameSource
	analyzer analyzer
	store    *history.Store

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(cfg *config.Config, source FrameSource, analyzer analyzer, store *history.Store) *Sampler {
	return &Sampler{
		interval: time.Duration(cfg.Capture.IntervalSeconds) * time.Second,
		warmup:   time.Duration(cfg.Capture.WarmupSeconds) * time.Second,
		source:   source,
		analyzer: analyzer,
		store:    store,
	}
}

// Start launches the sampling loop. Calling Start on a running sampler is a
// no-op.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go s.run(ctx)
}

// Stop cancels future samples. A sample already in flight still completes
// and still records its result.
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Sampler) run(ctx context.Context) {
	warmup := time.NewTimer(s.warmup)
	defer warmup.Stop()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-warmup.C:
			s.sample(ctx)
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

// sample runs one analyze cycle. A missing or zero-dimension frame is a
// transient condition and skips silently; the next tick tries again.
// Failures log and neither append an entry nor stop the loop.
func (s *Sampler) sample(ctx context.Context) {
	frame, ok := s.source.CurrentFrame()
	if !ok || frame.Width == 0 || frame.Height == 0 {
		slog.Debug("Frame dimensions not ready yet, skipping analysis")
		return
	}

	encoded := base64.StdEncoding.EncodeToString(frame.JPEG)

	// the analyze call outlives cancellation: a cycle that raced a Stop
	// still applies its result
	resp, err := s.analyzer.AnalyzeImage(context.WithoutCancel(ctx), encoded)
	if err != nil {
		slog.Error("Screen analysis failed", "error", err)
		return
	}

	analysis := noAnalysisPlaceholder
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		analysis = resp.Choices[0].Message.Content
	}

	s.store.Append(history.NewEntry(analysis))

	slog.Info("Frame analyzed", "length", len(analysis))
}
