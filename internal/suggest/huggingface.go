package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotConfigured 表示来源缺少 API Key，调用方按失败处理。
var ErrNotConfigured = errors.New("suggestion source not configured")

const (
	huggingFacePromptPrefix = "Analyze this resume and provide detailed, specific improvement suggestions. Be descriptive and actionable:\n\n"
	huggingFacePromptSuffix = "\n\nDetailed Suggestions:"

	maxResponseBytes = 1 << 20
)

// HuggingFaceClient 调用 HuggingFace Inference API 的文本生成接口。
type HuggingFaceClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewHuggingFaceClient 构造客户端。httpClient 为 nil 时使用 http.DefaultClient。
func NewHuggingFaceClient(httpClient *http.Client, baseURL, apiKey, model string) *HuggingFaceClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HuggingFaceClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

// Name 实现 Generator。
func (c *HuggingFaceClient) Name() string { return "huggingface" }

// Generate 返回模型生成的文本。
func (c *HuggingFaceClient) Generate(ctx context.Context, resumeText string) (string, error) {
	if c.apiKey == "" || c.baseURL == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(huggingFaceRequest{
		Inputs: huggingFacePromptPrefix + resumeText + huggingFacePromptSuffix,
		Parameters: huggingFaceParameters{
			MaxNewTokens:   1000,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode huggingface request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build huggingface request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call huggingface: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read huggingface response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(raw, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("huggingface status %d: %s", resp.StatusCode, msg)
	}

	// 文本生成接口通常返回 [{"generated_text": "..."}]，部分模型返回单个对象。
	text := gjson.GetBytes(raw, "0.generated_text")
	if !text.Exists() {
		text = gjson.GetBytes(raw, "generated_text")
	}
	return text.String(), nil
}
