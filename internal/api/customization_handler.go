package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/templates"
)

// CustomizationHandler 读写用户级的模板与配色选择。
type CustomizationHandler struct {
	store  customizationStore
	logger *slog.Logger
}

// NewCustomizationHandler 构造 CustomizationHandler。
func NewCustomizationHandler(store customizationStore, logger *slog.Logger) *CustomizationHandler {
	return &CustomizationHandler{store: store, logger: logger}
}

// GetCustomization 返回当前定制，未保存过时返回默认值。
func (h *CustomizationHandler) GetCustomization(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	custom, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		requestLogger(c, h.logger).Error("get customization failed", slog.Any("error", err))
		Internal(c, "failed to load customization")
		return
	}
	c.JSON(http.StatusOK, custom)
}

// PutCustomization 整体覆盖定制，缺失字段取默认值。
func (h *CustomizationHandler) PutCustomization(c *gin.Context) {
	h.save(c, false)
}

// PatchCustomization 只更新请求中出现的非空字段。
func (h *CustomizationHandler) PatchCustomization(c *gin.Context) {
	h.save(c, true)
}

func (h *CustomizationHandler) save(c *gin.Context, patch bool) {
	var req resume.Customization
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Template != "" {
		if _, ok := templates.ByID(req.Template); !ok {
			BadRequest(c, "unknown template")
			return
		}
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var (
		saved resume.Customization
		err   error
	)
	if patch {
		saved, err = h.store.Patch(c.Request.Context(), userID, req)
	} else {
		saved, err = h.store.Put(c.Request.Context(), userID, req)
	}
	if err != nil {
		requestLogger(c, h.logger).Error("save customization failed", slog.Any("error", err))
		Internal(c, "failed to save customization")
		return
	}
	c.JSON(http.StatusOK, saved)
}
