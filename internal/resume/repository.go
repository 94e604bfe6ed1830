package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumeBuilder/internal/database"
)

var (
	// ErrNotFound 表示简历不存在或不属于当前用户。
	ErrNotFound = errors.New("resume not found")
	// ErrQuotaExceeded 表示用户已达到简历数量上限。
	ErrQuotaExceeded = errors.New("resume limit reached")
	// ErrIDExhausted 表示多次重试后仍未拿到空闲 ID。
	ErrIDExhausted = errors.New("no free resume id")
)

const maxIDAttempts = 5

// Record 是对外返回的简历，附带导出状态。
type Record struct {
	Resume
	UserID       uint   `json:"-"`
	PdfObjectKey string `json:"-"`
	ExportStatus string `json:"exportStatus,omitempty"`
}

// Repository 基于 GORM 持久化简历。所有写操作均为整条覆盖，后写者胜出。
type Repository struct {
	db         *gorm.DB
	ids        *IDGenerator
	now        func() time.Time
	maxResumes int
}

// Option 调整 Repository 的可选行为。
type Option func(*Repository)

// WithClock 替换时间来源，便于测试。
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) {
		r.now = clock
		r.ids = NewIDGenerator(clock)
	}
}

// WithMaxResumes 设置每个用户可保存的简历上限，0 表示不限。
func WithMaxResumes(n int) Option {
	return func(r *Repository) {
		r.maxResumes = n
	}
}

// NewRepository 构造 Repository。
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{
		db:  db,
		ids: NewIDGenerator(nil),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List 按创建顺序返回用户的全部简历。
func (r *Repository) List(ctx context.Context, userID uint) ([]Record, error) {
	var rows []database.Resume
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get 返回用户名下指定 ID 的简历。
func (r *Repository) Get(ctx context.Context, userID uint, id string) (*Record, error) {
	row, err := r.findRow(r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID))
	if err != nil {
		return nil, err
	}
	rec, err := recordFromRow(*row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Find 不校验归属，仅供 worker 使用。
func (r *Repository) Find(ctx context.Context, id string) (*Record, error) {
	row, err := r.findRow(r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	rec, err := recordFromRow(*row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create 保存一份新简历，生成 ID 与时间戳。
func (r *Repository) Create(ctx context.Context, userID uint, data Data, title string) (*Record, error) {
	if r.maxResumes > 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&database.Resume{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count resumes: %w", err)
		}
		if count >= int64(r.maxResumes) {
			return nil, ErrQuotaExceeded
		}
	}

	now := r.now().UTC()
	data.Normalize()
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode resume data: %w", err)
	}

	row := database.Resume{
		UserID:    userID,
		Title:     DefaultTitle(data, title, now),
		Data:      datatypes.JSON(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.insertWithFreshID(ctx, &row); err != nil {
		return nil, err
	}

	rec, err := recordFromRow(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// insertWithFreshID 插入 row 并分配 ID。ID 只在进程内单调，多个实例可能在同一毫秒
// 生成相同 ID，此时换下一个 ID 重试。
func (r *Repository) insertWithFreshID(ctx context.Context, row *database.Resume) error {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		row.ID = r.ids.Next()
		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			Create(row)
		if res.Error != nil {
			return fmt.Errorf("create resume: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
	}
	return fmt.Errorf("create resume: %w", ErrIDExhausted)
}

// Update 整体替换简历数据；title 为空时保留原标题。只更新 updatedAt。
func (r *Repository) Update(ctx context.Context, userID uint, id string, data Data, title string) (*Record, error) {
	row, err := r.findRow(r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID))
	if err != nil {
		return nil, err
	}

	data.Normalize()
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode resume data: %w", err)
	}

	updates := map[string]any{
		"data":       datatypes.JSON(payload),
		"updated_at": r.now().UTC(),
	}
	if t := strings.TrimSpace(title); t != "" {
		updates["title"] = t
	}

	if err := r.db.WithContext(ctx).Model(row).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}

	return r.Get(ctx, userID, id)
}

// Delete 删除简历，返回被删除的记录以便调用方清理导出文件。
func (r *Repository) Delete(ctx context.Context, userID uint, id string) (*Record, error) {
	existing, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&database.Resume{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return existing, nil
}

// Duplicate 复制一份简历，使用新的 ID 和时间戳。
func (r *Repository) Duplicate(ctx context.Context, userID uint, id string) (*Record, error) {
	src, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return r.Create(ctx, userID, src.Data, src.Title+" (Copy)")
}

// Import 写入外部导出的简历数组，保留原有 ID 与时间戳；ID 已存在的记录被跳过。
func (r *Repository) Import(ctx context.Context, userID uint, resumes []Resume) (int, error) {
	imported := 0
	for _, item := range resumes {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = r.ids.Next()
		}
		now := r.now().UTC()
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		updatedAt := item.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}

		data := item.Data
		data.Normalize()
		payload, err := json.Marshal(data)
		if err != nil {
			return imported, fmt.Errorf("encode resume %s: %w", id, err)
		}

		row := database.Resume{
			ID:        id,
			UserID:    userID,
			Title:     DefaultTitle(data, item.Title, createdAt),
			Data:      datatypes.JSON(payload),
			CreatedAt: createdAt.UTC(),
			UpdatedAt: updatedAt.UTC(),
		}
		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return imported, fmt.Errorf("import resume %s: %w", id, res.Error)
		}
		imported += int(res.RowsAffected)
	}
	return imported, nil
}

// SetExportStatus 记录导出任务的状态；pdfKey 为空时保持原值。
func (r *Repository) SetExportStatus(ctx context.Context, id string, status string, pdfKey string) error {
	updates := map[string]any{"export_status": status}
	if pdfKey != "" {
		updates["pdf_object_key"] = pdfKey
	}
	// 导出状态不属于内容修改，不触碰 updated_at。
	res := r.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("id = ?", id).
		UpdateColumns(updates)
	if res.Error != nil {
		return fmt.Errorf("set export status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) findRow(query *gorm.DB) (*database.Resume, error) {
	var row database.Resume
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query resume: %w", err)
	}
	return &row, nil
}

// DefaultTitle 依次尝试：给定标题、"<姓名>'s Resume"、"Resume - <日期>"。
func DefaultTitle(data Data, title string, now time.Time) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if name := strings.TrimSpace(data.Personal.FullName); name != "" {
		return name + "'s Resume"
	}
	return "Resume - " + now.Format("2006-01-02")
}

func recordFromRow(row database.Resume) (Record, error) {
	var data Data
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return Record{}, fmt.Errorf("decode resume %s: %w", row.ID, err)
		}
	}
	data.Normalize()

	return Record{
		Resume: Resume{
			ID:        row.ID,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Data:      data,
		},
		UserID:       row.UserID,
		PdfObjectKey: row.PdfObjectKey,
		ExportStatus: row.ExportStatus,
	}, nil
}
