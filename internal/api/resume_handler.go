package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/storage"
)

type resumeStore interface {
	List(ctx context.Context, userID uint) ([]resume.Record, error)
	Get(ctx context.Context, userID uint, id string) (*resume.Record, error)
	Create(ctx context.Context, userID uint, data resume.Data, title string) (*resume.Record, error)
	Update(ctx context.Context, userID uint, id string, data resume.Data, title string) (*resume.Record, error)
	Delete(ctx context.Context, userID uint, id string) (*resume.Record, error)
	Duplicate(ctx context.Context, userID uint, id string) (*resume.Record, error)
	SetExportStatus(ctx context.Context, id string, status string, pdfKey string) error
}

type exportCleaner interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

// ResumeHandler 负责简历的增删改查与复制。
type ResumeHandler struct {
	resumes resumeStore
	storage exportCleaner
	logger  *slog.Logger
}

// NewResumeHandler 构造 ResumeHandler。storageClient 可为 nil，此时删除简历不清理导出文件。
func NewResumeHandler(resumes resumeStore, storageClient exportCleaner, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumes: resumes,
		storage: storageClient,
		logger:  logger,
	}
}

type resumeRequest struct {
	Title string       `json:"title"`
	Data  *resume.Data `json:"data" binding:"required"`
}

// ListResumes 按创建顺序返回当前用户的全部简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	records, err := h.resumes.List(c.Request.Context(), userID)
	if err != nil {
		requestLogger(c, h.logger).Error("list resumes failed", slog.Any("error", err))
		Internal(c, "failed to list resumes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": records})
}

// CreateResume 保存一份新简历，超过限额返回 403。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.resumes.Create(c.Request.Context(), userID, *req.Data, req.Title)
	if err != nil {
		h.writeStoreError(c, err, "failed to create resume")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetResume 返回单份简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.resumes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeStoreError(c, err, "failed to query resume")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateResume 整体替换简历内容；title 为空时保留原标题。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.resumes.Update(c.Request.Context(), userID, c.Param("id"), *req.Data, req.Title)
	if err != nil {
		h.writeStoreError(c, err, "failed to update resume")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DuplicateResume 复制一份简历，标题追加 " (Copy)"。
func (h *ResumeHandler) DuplicateResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.resumes.Duplicate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeStoreError(c, err, "failed to duplicate resume")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// DeleteResume 删除简历并清理其导出文件。清理失败只记录日志。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	rec, err := h.resumes.Delete(ctx, userID, c.Param("id"))
	if err != nil {
		h.writeStoreError(c, err, "failed to delete resume")
		return
	}

	if h.storage != nil {
		prefix := storage.ExportPrefix(userID, rec.ID)
		if err := h.storage.DeletePrefix(ctx, prefix); err != nil {
			requestLogger(c, h.logger).Warn("delete resume exports failed",
				slog.String("resume_id", rec.ID),
				slog.String("prefix", prefix),
				slog.Any("error", err),
			)
		}
	}

	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) writeStoreError(c *gin.Context, err error, msg string) {
	writeResumeError(c, requestLogger(c, h.logger), err, msg)
}

// writeResumeError 把仓储层错误映射为 HTTP 状态。
func writeResumeError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, resume.ErrNotFound):
		NotFound(c, "resume not found")
	case errors.Is(err, resume.ErrQuotaExceeded):
		Forbidden(c, err.Error())
	default:
		logger.Error(msg, slog.Any("error", err))
		Internal(c, msg)
	}
}
