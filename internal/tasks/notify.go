package tasks

import "strconv"

// 导出状态通知经 Redis Pub/Sub 转发到用户的 WebSocket 连接。
// 字段名与前端解析保持一致。
type ExportNotifyMessage struct {
	Type          string `json:"type"`
	Status        string `json:"status"`
	ResumeID      string `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// NotifyType 标识导出通知，便于前端区分消息种类。
const NotifyType = "export_pdf"

const (
	NotifyStatusCompleted = "completed"
	NotifyStatusError     = "error"
)

// NotifyChannel 返回用户通知频道名。
func NotifyChannel(userID uint) string {
	return "user_notify:" + strconv.FormatUint(uint64(userID), 10)
}
