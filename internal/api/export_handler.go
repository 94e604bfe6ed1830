package api

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/export"
	"resumeBuilder/internal/metrics"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/tasks"
)

type customizationStore interface {
	Get(ctx context.Context, userID uint) (resume.Customization, error)
	Put(ctx context.Context, userID uint, c resume.Customization) (resume.Customization, error)
	Patch(ctx context.Context, userID uint, patch resume.Customization) (resume.Customization, error)
}

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type linkSigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration, filename string) (string, error)
}

// ExportHandler 提供 HTML、纯文本导出以及异步 PDF 导出。
type ExportHandler struct {
	resumes        resumeStore
	customizations customizationStore
	queue          taskEnqueuer
	links          linkSigner
	maxRetry       int
	presignTTL     time.Duration
	logger         *slog.Logger
}

// NewExportHandler 构造 ExportHandler。
func NewExportHandler(resumes resumeStore, customizations customizationStore, queue taskEnqueuer, links linkSigner, maxRetry int, presignTTL time.Duration, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		resumes:        resumes,
		customizations: customizations,
		queue:          queue,
		links:          links,
		maxRetry:       maxRetry,
		presignTTL:     presignTTL,
		logger:         logger,
	}
}

// ExportHTML 返回可打印的 HTML 文档；?download=1 时作为附件下载。
func (h *ExportHandler) ExportHTML(c *gin.Context) {
	doc, ok := h.loadForExport(c)
	if !ok {
		return
	}

	body, err := export.RenderHTML(doc)
	if err != nil {
		requestLogger(c, h.logger).Error("render html failed", slog.String("resume_id", doc.ID), slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}

	metrics.RecordExport("html")
	if c.Query("download") == "1" {
		c.Header("Content-Disposition", `attachment; filename="`+exportFilename(doc.Title, ".html")+`"`)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// ExportText 返回简历的纯文本形式，与 AI 分析使用的输入一致。
func (h *ExportHandler) ExportText(c *gin.Context) {
	doc, ok := h.loadForExport(c)
	if !ok {
		return
	}

	metrics.RecordExport("text")
	if c.Query("download") == "1" {
		c.Header("Content-Disposition", `attachment; filename="`+exportFilename(doc.Title, ".txt")+`"`)
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.PlainText(doc)))
}

// RequestPDF 将 PDF 导出任务入队并立即返回 202，完成后通过 WebSocket 通知。
func (h *ExportHandler) RequestPDF(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := requestLogger(c, h.logger)
	rec, err := h.resumes.Get(ctx, userID, c.Param("id"))
	if err != nil {
		writeResumeError(c, logger, err, "failed to query resume")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewExportPDFTask(rec.ID, userID, correlationID)
	if err != nil {
		logger.Error("create export task failed", slog.Any("error", err))
		Internal(c, "failed to create task")
		return
	}

	if err := h.resumes.SetExportStatus(ctx, rec.ID, database.ExportStatusPending, ""); err != nil {
		writeResumeError(c, logger, err, "failed to update export status")
		return
	}

	info, err := h.queue.EnqueueContext(ctx, task, asynq.MaxRetry(h.maxRetry))
	if err != nil {
		logger.Error("enqueue pdf export failed", slog.String("resume_id", rec.ID), slog.Any("error", err))
		_ = h.resumes.SetExportStatus(ctx, rec.ID, database.ExportStatusFailed, "")
		Internal(c, "failed to enqueue pdf export")
		return
	}

	logger.Info("pdf export enqueued", slog.String("resume_id", rec.ID), slog.String("task_id", info.ID))
	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
		"status":  database.ExportStatusPending,
	})
}

// GetPDFLink 为已完成的 PDF 生成预签名下载链接；未完成时返回 409。
func (h *ExportHandler) GetPDFLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := requestLogger(c, h.logger)
	rec, err := h.resumes.Get(ctx, userID, c.Param("id"))
	if err != nil {
		writeResumeError(c, logger, err, "failed to query resume")
		return
	}

	if rec.ExportStatus != database.ExportStatusCompleted || rec.PdfObjectKey == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "pdf not ready", "status": rec.ExportStatus})
		return
	}

	url, err := h.links.GeneratePresignedURL(ctx, rec.PdfObjectKey, h.presignTTL, exportFilename(rec.Title, ".pdf"))
	if err != nil {
		logger.Error("presign pdf failed", slog.String("resume_id", rec.ID), slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": int(h.presignTTL.Seconds()),
	})
}

// loadForExport 读取简历，并在简历未自带定制时套用用户保存的定制。
func (h *ExportHandler) loadForExport(c *gin.Context) (resume.Resume, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return resume.Resume{}, false
	}

	ctx := c.Request.Context()
	logger := requestLogger(c, h.logger)
	rec, err := h.resumes.Get(ctx, userID, c.Param("id"))
	if err != nil {
		writeResumeError(c, logger, err, "failed to query resume")
		return resume.Resume{}, false
	}

	doc := rec.Resume
	if doc.Data.Customization == nil && h.customizations != nil {
		custom, err := h.customizations.Get(ctx, userID)
		if err != nil {
			logger.Warn("load customization failed, using defaults", slog.Any("error", err))
			custom = resume.DefaultCustomization()
		}
		doc.Data.Customization = &custom
	}
	return doc, true
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9 ._'-]+`)

// exportFilename 生成可放入 Content-Disposition 的文件名。
func exportFilename(title, ext string) string {
	name := strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(title, "_"))
	if name == "" {
		name = "resume"
	}
	return name + ext
}
