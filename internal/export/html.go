// Package export 把简历渲染为可打印的 HTML 文档和纯文本。
package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/templates"
)

//go:embed resume.html.tmpl
var resumeTemplateText string

var resumeTemplate = template.Must(template.New("resume").
	Funcs(template.FuncMap{"splitSkills": splitSkills}).
	Parse(resumeTemplateText))

var (
	hexColorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	fontFamilyPattern = regexp.MustCompile(`^[A-Za-z0-9 ,'\-]{1,120}$`)
)

type htmlView struct {
	Title      string
	Name       string
	Contact    []string
	TemplateID string
	Style      template.CSS
	Data       resume.Data
}

// RenderHTML 生成简历的打印版 HTML。所有用户输入都经过转义；
// 定制中非法的颜色或字体回退为默认值。
func RenderHTML(r resume.Resume) ([]byte, error) {
	c := sanitizeCustomization(r.Data.EffectiveCustomization())
	tpl := templates.Resolve(c.Template)

	name := r.Data.Personal.FullName
	if strings.TrimSpace(name) == "" {
		name = "Resume"
	}

	view := htmlView{
		Title:      r.Title,
		Name:       name,
		Contact:    contactLine(r.Data.Personal),
		TemplateID: tpl.ID,
		Style:      template.CSS(baseCSS(c) + "\n" + tpl.CSS),
		Data:       r.Data,
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render resume html: %w", err)
	}
	return buf.Bytes(), nil
}

func contactLine(p resume.Personal) []string {
	var out []string
	for _, v := range []string{p.Email, p.Mobile, p.Address} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func sanitizeCustomization(c resume.Customization) resume.Customization {
	def := resume.DefaultCustomization()
	if !hexColorPattern.MatchString(c.HeadingColor) {
		c.HeadingColor = def.HeadingColor
	}
	if !hexColorPattern.MatchString(c.ContentColor) {
		c.ContentColor = def.ContentColor
	}
	if !fontFamilyPattern.MatchString(c.FontFamily) {
		c.FontFamily = def.FontFamily
	}
	return c
}

// baseCSS 的颜色和字体已经过 sanitizeCustomization 校验。
func baseCSS(c resume.Customization) string {
	return fmt.Sprintf(`* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: %[3]s; color: %[2]s; line-height: 1.6; padding: 20px; background: white; }
.container { max-width: 8.5in; min-height: 11in; margin: 0 auto; background: white; padding: 40px; }
.header { text-align: center; border-bottom: 2px solid #2563eb; padding-bottom: 20px; margin-bottom: 25px; }
.header h1 { font-size: 28px; color: %[1]s; margin-bottom: 8px; }
.contact-info { font-size: 12px; color: #666; }
.section { margin-bottom: 20px; }
.section-title { font-size: 14px; font-weight: bold; color: %[1]s; border-bottom: 1px solid #ddd; padding-bottom: 8px; margin-bottom: 12px; text-transform: uppercase; }
.entry { margin-bottom: 12px; font-size: 12px; }
.entry-title { font-weight: bold; color: #000; }
.entry-subtitle { color: #666; font-style: italic; }
.entry-description { color: %[2]s; margin-top: 4px; white-space: pre-wrap; }
.skills-container { display: flex; flex-wrap: wrap; gap: 8px; }
.skill-badge { background: #e0f2fe; color: #0369a1; padding: 4px 8px; border-radius: 4px; font-size: 11px; }
@media print { body { padding: 0; } .container { padding: 20px; } }`, c.HeadingColor, c.ContentColor, c.FontFamily)
}
