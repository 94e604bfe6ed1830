package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/ats"
	"resumeBuilder/internal/export"
	"resumeBuilder/internal/metrics"
	"resumeBuilder/internal/suggest"
	"resumeBuilder/internal/textextract"
)

const (
	msgContentRequired   = "Resume content is required"
	msgATSFailed         = "Failed to calculate ATS score"
	msgSuggestionsFailed = "Failed to generate suggestions. Please check your API keys."
)

type suggester interface {
	Suggest(ctx context.Context, resumeText string) ([]suggest.Suggestion, error)
}

// AnalysisHandler 提供 ATS 评分与 AI 建议接口。
type AnalysisHandler struct {
	suggestions    suggester
	resumes        resumeStore
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAnalysisHandler 构造 AnalysisHandler。maxUploadBytes 限制上传文件大小。
func NewAnalysisHandler(suggestions suggester, resumes resumeStore, maxUploadBytes int64, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		suggestions:    suggestions,
		resumes:        resumes,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type analysisRequest struct {
	ResumeContent string `json:"resumeContent"`
}

func bindResumeContent(c *gin.Context) (string, bool) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, err.Error())
		return "", false
	}
	if req.ResumeContent == "" {
		BadRequest(c, msgContentRequired)
		return "", false
	}
	return req.ResumeContent, true
}

// ATSScore 对请求体中的简历文本评分。
func (h *AnalysisHandler) ATSScore(c *gin.Context) {
	content, ok := bindResumeContent(c)
	if !ok {
		return
	}
	h.writeScore(c, content)
}

// Suggestions 调用两个模型来源生成改进建议。
func (h *AnalysisHandler) Suggestions(c *gin.Context) {
	content, ok := bindResumeContent(c)
	if !ok {
		return
	}
	h.writeSuggestions(c, content)
}

// ATSScoreFile 接收 multipart 上传的 PDF、DOCX 或纯文本文件，提取文本后评分。
func (h *AnalysisHandler) ATSScoreFile(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes {
			TooLarge(c, "file too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			TooLarge(c, "file too large")
			return
		}
		BadRequest(c, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		BadRequest(c, "could not read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		BadRequest(c, "could not read file")
		return
	}

	text, err := textextract.Extract(header.Filename, data)
	if err != nil {
		if errors.Is(err, textextract.ErrUnsupported) {
			Unsupported(c, err.Error())
			return
		}
		requestLogger(c, h.logger).Info("extract upload text failed",
			slog.String("filename", header.Filename),
			slog.Any("error", err),
		)
		BadRequest(c, "could not read file")
		return
	}
	if strings.TrimSpace(text) == "" {
		BadRequest(c, msgContentRequired)
		return
	}
	h.writeScore(c, text)
}

// ResumeATSScore 对已保存简历的纯文本形式评分。
func (h *AnalysisHandler) ResumeATSScore(c *gin.Context) {
	text, ok := h.storedResumeText(c)
	if !ok {
		return
	}
	h.writeScore(c, text)
}

// ResumeSuggestions 为已保存简历生成改进建议。
func (h *AnalysisHandler) ResumeSuggestions(c *gin.Context) {
	text, ok := h.storedResumeText(c)
	if !ok {
		return
	}
	h.writeSuggestions(c, text)
}

func (h *AnalysisHandler) storedResumeText(c *gin.Context) (string, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return "", false
	}
	rec, err := h.resumes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeResumeError(c, requestLogger(c, h.logger), err, "failed to query resume")
		return "", false
	}
	return export.PlainText(rec.Resume), true
}

func (h *AnalysisHandler) writeScore(c *gin.Context, text string) {
	score, err := ats.Calculate(text)
	if err != nil {
		requestLogger(c, h.logger).Error("ats scoring failed", slog.Any("error", err))
		Internal(c, msgATSFailed)
		return
	}
	metrics.ObserveATSScore(score.Overall)
	c.JSON(http.StatusOK, gin.H{"atsScore": score})
}

func (h *AnalysisHandler) writeSuggestions(c *gin.Context, text string) {
	items, err := h.suggestions.Suggest(c.Request.Context(), text)
	if err != nil {
		requestLogger(c, h.logger).Error("generate suggestions failed", slog.Any("error", err))
		Internal(c, msgSuggestionsFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": items,
		"message":     fmt.Sprintf("Generated %d AI-powered suggestions for your resume", len(items)),
	})
}
