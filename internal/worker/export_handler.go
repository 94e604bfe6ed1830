package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"resumeBuilder/internal/database"
	"resumeBuilder/internal/errcode"
	"resumeBuilder/internal/export"
	"resumeBuilder/internal/metrics"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/storage"
	"resumeBuilder/internal/tasks"
)

type resumeStore interface {
	Find(ctx context.Context, id string) (*resume.Record, error)
	SetExportStatus(ctx context.Context, id string, status string, pdfKey string) error
}

type customizationSource interface {
	Get(ctx context.Context, userID uint) (resume.Customization, error)
}

type pdfRenderer interface {
	GeneratePDFFromHTML(ctx context.Context, htmlContent string) ([]byte, error)
}

type objectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// ExportTaskHandler 消费 PDF 导出任务：渲染 HTML、打印为 PDF、上传 MinIO 并通知用户。
type ExportTaskHandler struct {
	resumes        resumeStore
	customizations customizationSource
	renderer       pdfRenderer
	storage        objectStore
	notifier       publisher
	logger         *slog.Logger
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	resumes resumeStore,
	customizations customizationSource,
	renderer pdfRenderer,
	storage objectStore,
	notifier publisher,
	logger *slog.Logger,
) *ExportTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportTaskHandler{
		resumes:        resumes,
		customizations: customizations,
		renderer:       renderer,
		storage:        storage,
		notifier:       notifier,
		logger:         logger,
	}
}

// taskError 携带通知中使用的错误码。
type taskError struct {
	code int
	err  error
}

func (e *taskError) Error() string { return e.err.Error() }
func (e *taskError) Unwrap() error { return e.err }

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	payload, err := tasks.ParseExportPDFPayload(t)
	if err != nil {
		log.Error("parse export payload failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("resume_id", payload.ResumeID),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("starting pdf export task")

	rec, err := h.resumes.Find(ctx, payload.ResumeID)
	if err == nil && rec.UserID != payload.UserID {
		err = resume.ErrNotFound
	}
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			log.Warn("resume not found, skipping export")
			h.notify(ctx, log, payload, tasks.NotifyStatusError, errcode.ResumeMissing, "resume no longer exists")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil || !isFinalAsynqAttempt(ctx) {
			return
		}
		code := errcode.SystemError
		var te *taskError
		if errors.As(retErr, &te) {
			code = te.code
		}
		if err := h.resumes.SetExportStatus(ctx, rec.ID, database.ExportStatusFailed, ""); err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}
		h.notify(ctx, log, payload, tasks.NotifyStatusError, code, strings.TrimSpace(retErr.Error()))
	}()

	doc := rec.Resume
	if doc.Data.Customization == nil {
		c, err := h.customizations.Get(ctx, rec.UserID)
		if err != nil {
			log.Warn("load customization failed, using defaults", slog.Any("error", err))
			c = resume.DefaultCustomization()
		}
		doc.Data.Customization = &c
	}

	htmlContent, err := export.RenderHTML(doc)
	if err != nil {
		return &taskError{code: errcode.RenderFailed, err: err}
	}

	pdfBytes, err := h.renderer.GeneratePDFFromHTML(ctx, string(htmlContent))
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return &taskError{code: errcode.RenderFailed, err: fmt.Errorf("generate pdf: %w", err)}
	}

	objectKey := storage.NewExportObjectKey(rec.UserID, rec.ID)
	if _, err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return &taskError{code: errcode.StorageFailed, err: err}
	}

	if err := h.resumes.SetExportStatus(ctx, rec.ID, database.ExportStatusCompleted, objectKey); err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			// 导出期间简历被删除，清理刚上传的文件。
			if delErr := h.storage.DeleteObject(ctx, objectKey); delErr != nil {
				log.Warn("delete orphan pdf failed", slog.Any("error", delErr))
			}
			h.notify(ctx, log, payload, tasks.NotifyStatusError, errcode.ResumeMissing, "resume no longer exists")
			return nil
		}
		log.Error("update export status failed", slog.Any("error", err))
		return err
	}

	if old := rec.PdfObjectKey; old != "" && old != objectKey {
		if err := h.storage.DeleteObject(ctx, old); err != nil {
			log.Warn("delete previous pdf failed", slog.String("object_key", old), slog.Any("error", err))
		}
	}

	metrics.RecordExport("pdf")
	h.notify(ctx, log, payload, tasks.NotifyStatusCompleted, errcode.OK, "")
	log.Info("pdf export task completed", slog.String("object_key", objectKey), slog.Int("bytes", len(pdfBytes)))
	return nil
}

func (h *ExportTaskHandler) notify(ctx context.Context, log *slog.Logger, p tasks.ExportPDFPayload, status string, code int, message string) {
	data, err := json.Marshal(tasks.ExportNotifyMessage{
		Type:          tasks.NotifyType,
		Status:        status,
		ResumeID:      p.ResumeID,
		CorrelationID: p.CorrelationID,
		ErrorCode:     code,
		ErrorMessage:  message,
	})
	if err != nil {
		log.Error("marshal notification failed", slog.Any("error", err))
		return
	}
	channel := tasks.NotifyChannel(p.UserID)
	if err := h.notifier.Publish(ctx, channel, data).Err(); err != nil {
		log.Error("publish redis notification failed", slog.String("channel", channel), slog.Any("error", err))
	}
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
