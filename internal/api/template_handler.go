package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/templates"
)

// TemplateHandler 暴露内置模板目录与配色方案，数据为静态常量。
type TemplateHandler struct{}

// NewTemplateHandler 构造 TemplateHandler。
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates 返回全部模板以及可选的颜色、字体。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates": templates.All(),
		"palette":   templates.DefaultPalette(),
	})
}

// GetTemplate 按 ID 返回单个模板。
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, ok := templates.ByID(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, tmpl)
}
