package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Email              string   `gorm:"uniqueIndex;size:255"`
	Name               string   `gorm:"size:128"`
	PasswordHash       string   `gorm:"size:255"`
	MustChangePassword bool     `gorm:"default:false"`
	Resumes            []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户保存的一份简历。
// ID 为毫秒时间戳字符串；Data 以 JSONB 保存七个表单及定制信息。
type Resume struct {
	ID           string         `gorm:"primaryKey;size:32"`
	UserID       uint           `gorm:"index"`
	Title        string         `gorm:"size:255"`
	Data         datatypes.JSON `gorm:"type:jsonb"`
	PdfObjectKey string         `gorm:"size:512"`
	ExportStatus string         `gorm:"size:32"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
}

// 导出状态取值。
const (
	ExportStatusNone      = ""
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)
