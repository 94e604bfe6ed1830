package suggest

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterSystemPrompt = "You are an expert resume reviewer. Analyze resumes and provide specific, actionable improvements."
	openRouterUserPrefix   = "Analyze this resume line by line and provide 8 specific improvement suggestions:\n\n"

	// DefaultOpenRouterModel 在未配置模型时使用。
	DefaultOpenRouterModel = "anthropic/claude-3-haiku"
)

// OpenRouterClient 通过 OpenAI 兼容接口调用 OpenRouter。
type OpenRouterClient struct {
	client *openai.Client
	model  string
}

// NewOpenRouterClient 构造客户端；apiKey 为空时返回 nil client，Generate 会报告未配置。
func NewOpenRouterClient(baseURL, apiKey, model string) *OpenRouterClient {
	if model == "" {
		model = DefaultOpenRouterModel
	}
	if apiKey == "" {
		return &OpenRouterClient{model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenRouterClient{client: openai.NewClientWithConfig(cfg), model: model}
}

// Name 实现 Generator。
func (c *OpenRouterClient) Name() string { return "openrouter" }

// Generate 返回第一条候选回复的内容。
func (c *OpenRouterClient) Generate(ctx context.Context, resumeText string) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openRouterSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: openRouterUserPrefix + resumeText},
		},
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("call openrouter: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
