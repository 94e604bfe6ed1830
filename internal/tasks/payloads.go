package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeExportPDF = "export:pdf"
)

// ExportPDFPayload 描述导出 PDF 所需的最小信息。
type ExportPDFPayload struct {
	ResumeID      string `json:"resume_id"`
	UserID        uint   `json:"user_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewExportPDFTask 构造一个简历 PDF 导出任务。
func NewExportPDFTask(resumeID string, userID uint, correlationID string, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPDFPayload{
		ResumeID:      resumeID,
		UserID:        userID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeExportPDF, payload, opts...), nil
}

// ParseExportPDFPayload 解析任务负载。
func ParseExportPDFPayload(t *asynq.Task) (ExportPDFPayload, error) {
	var p ExportPDFPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ExportPDFPayload{}, fmt.Errorf("unmarshal export payload: %w", err)
	}
	if p.ResumeID == "" {
		return ExportPDFPayload{}, fmt.Errorf("export payload missing resume id")
	}
	return p, nil
}
