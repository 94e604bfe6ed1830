// Package suggest 调用外部语言模型为简历生成改进建议。
//
// 两个来源并发调用、互不依赖、不重试：HuggingFace 失败时返回两条兜底建议，
// OpenRouter 失败时返回空列表。合并结果中 HuggingFace 的建议在前。
package suggest

import (
	"encoding/json"
	"strings"
)

// Suggestion 是一条改进建议。
type Suggestion struct {
	Type      string `json:"type"`
	Section   string `json:"section"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
	Priority  string `json:"priority"`
}

var (
	validTypes      = map[string]bool{"improvement": true, "enhancement": true, "optimization": true}
	validPriorities = map[string]bool{"high": true, "medium": true, "low": true}
)

func (s Suggestion) valid() bool {
	return validTypes[s.Type] &&
		validPriorities[s.Priority] &&
		strings.TrimSpace(s.Section) != "" &&
		strings.TrimSpace(s.Suggested) != ""
}

// parseSuggestions 从模型输出中截取第一个 JSON 数组并解析。
// 任一条目不合法即视为整体不可用。
func parseSuggestions(text string) ([]Suggestion, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var out []Suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, false
	}
	if len(out) == 0 {
		return nil, false
	}
	for _, s := range out {
		if !s.valid() {
			return nil, false
		}
	}
	return out, true
}
