package suggest

import (
	"context"
	"html"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"resumeBuilder/internal/metrics"
)

// Generator 是一个建议来源，返回模型原始输出。
type Generator interface {
	Name() string
	Generate(ctx context.Context, resumeText string) (string, error)
}

const (
	outcomeModel    = "model"
	outcomeCurated  = "curated"
	outcomeFallback = "fallback"
)

// Service 并发调用两个来源并合并结果。
type Service struct {
	huggingFace Generator
	openRouter  Generator
	timeout     time.Duration
	logger      *slog.Logger
	policy      *bluemonday.Policy
}

// NewService 构造 Service。timeout 作用于每个来源的单次调用，0 表示不额外限制。
func NewService(huggingFace, openRouter Generator, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		huggingFace: huggingFace,
		openRouter:  openRouter,
		timeout:     timeout,
		logger:      logger,
		policy:      bluemonday.StrictPolicy(),
	}
}

// Suggest 返回 HuggingFace 建议在前、OpenRouter 建议在后的合并列表。
// 单个来源失败不影响另一来源；仅当请求上下文已取消时返回错误。
func (s *Service) Suggest(ctx context.Context, resumeText string) ([]Suggestion, error) {
	text := s.clean(resumeText)

	var hf, or []Suggestion
	var g errgroup.Group
	g.Go(func() error {
		hf = s.fromSource(ctx, s.huggingFace, text, huggingFaceCurated, huggingFaceFallback)
		return nil
	})
	g.Go(func() error {
		or = s.fromSource(ctx, s.openRouter, text, openRouterCurated, nil)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(hf)+len(or))
	out = append(out, hf...)
	out = append(out, or...)
	return out, nil
}

func (s *Service) fromSource(ctx context.Context, src Generator, text string, curated, fallback []Suggestion) []Suggestion {
	if src == nil {
		return clone(fallback)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With(slog.String("source", src.Name()))
	output, err := src.Generate(ctx, text)
	if err != nil {
		log.Warn("suggestion source failed", slog.Any("error", err))
		metrics.RecordSuggestionOutcome(src.Name(), outcomeFallback)
		return clone(fallback)
	}

	if parsed, ok := parseSuggestions(output); ok {
		metrics.RecordSuggestionOutcome(src.Name(), outcomeModel)
		return parsed
	}
	log.Debug("model output not parseable, using curated suggestions")
	metrics.RecordSuggestionOutcome(src.Name(), outcomeCurated)
	return clone(curated)
}

// clean 去掉用户粘贴进来的 HTML 标记，保留纯文本。
func (s *Service) clean(text string) string {
	return html.UnescapeString(s.policy.Sanitize(text))
}
