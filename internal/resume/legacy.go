package resume

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidLegacyExport 表示导入文件既不是简历数组也不是 {"resumes": [...]}。
var ErrInvalidLegacyExport = errors.New("invalid resume export")

// DecodeLegacyList 解析浏览器本地存储（resumes_data 键）导出的简历数组。
// 也接受列表接口返回的 {"resumes": [...]} 包装形式。
func DecodeLegacyList(raw []byte) ([]Resume, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrInvalidLegacyExport
	}

	var list []Resume
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLegacyExport, err)
		}
	case '{':
		var wrapped struct {
			Resumes []Resume `json:"resumes"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLegacyExport, err)
		}
		list = wrapped.Resumes
	default:
		return nil, ErrInvalidLegacyExport
	}

	for i := range list {
		list[i].Data.Normalize()
	}
	return list, nil
}
