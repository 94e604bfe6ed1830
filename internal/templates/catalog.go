// Package templates 提供内置的简历模板目录以及定制面板可选的配色和字体。
package templates

// Styles 是前端渲染模板时使用的五组 Tailwind 类名。
type Styles struct {
	Container string `json:"container"`
	Header    string `json:"header"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// Template 描述一个可选模板。CSS 为导出打印版时附加的样式。
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
	Styles      Styles `json:"styles"`
	CSS         string `json:"-"`
}

var catalog = []Template{
	{
		ID:          "modern",
		Name:        "Modern Professional",
		Description: "Clean design with accent colors and modern typography",
		Preview:     "/templates/modern-preview.png",
		Styles: Styles{
			Container: "max-w-4xl mx-auto bg-white dark:bg-gray-900 shadow-lg",
			Header:    "bg-gradient-to-r from-blue-600 to-purple-600 text-white p-8",
			Section:   "p-6 border-l-4 border-blue-500 mb-6",
			Title:     "text-2xl font-bold text-blue-600 dark:text-blue-400 mb-4",
			Content:   "text-gray-700 dark:text-gray-300 leading-relaxed",
		},
		CSS: `.section { border-left: 4px solid #3b82f6; padding-left: 16px; }
.header { border-bottom: 3px solid #2563eb; }`,
	},
	{
		ID:          "classic",
		Name:        "Classic Professional",
		Description: "Traditional layout perfect for corporate environments",
		Preview:     "/templates/classic-preview.png",
		Styles: Styles{
			Container: "max-w-4xl mx-auto bg-white dark:bg-gray-900 border border-gray-300",
			Header:    "border-b-2 border-gray-800 p-6 text-center",
			Section:   "p-6 border-b border-gray-200 dark:border-gray-700",
			Title:     "text-xl font-serif text-gray-800 dark:text-gray-200 mb-3 uppercase tracking-wide",
			Content:   "text-gray-600 dark:text-gray-400 font-serif",
		},
		CSS: `body { font-family: Georgia, 'Times New Roman', serif; }
.header { border-bottom: 2px solid #1f2937; }
.section-title { text-transform: uppercase; letter-spacing: 0.05em; }`,
	},
	{
		ID:          "minimal",
		Name:        "Minimal Clean",
		Description: "Simple and elegant with plenty of white space",
		Preview:     "/templates/minimal-preview.png",
		Styles: Styles{
			Container: "max-w-3xl mx-auto bg-white dark:bg-gray-900",
			Header:    "p-8 text-center border-b border-gray-100 dark:border-gray-800",
			Section:   "p-6 mb-8",
			Title:     "text-lg font-light text-gray-900 dark:text-gray-100 mb-4 tracking-wider",
			Content:   "text-gray-600 dark:text-gray-400 font-light leading-loose",
		},
		CSS: `.header { border-bottom: 1px solid #f3f4f6; }
.section { margin-bottom: 40px; }
.section-title { font-weight: 300; border-bottom: none; letter-spacing: 0.1em; }`,
	},
	{
		ID:          "creative",
		Name:        "Creative Designer",
		Description: "Bold and colorful for creative professionals",
		Preview:     "/templates/creative-preview.png",
		Styles: Styles{
			Container: "max-w-4xl mx-auto bg-gradient-to-br from-purple-50 to-pink-50 dark:from-gray-900 dark:to-gray-800",
			Header:    "bg-gradient-to-r from-purple-500 via-pink-500 to-red-500 text-white p-8 rounded-t-lg",
			Section:   "p-6 bg-white dark:bg-gray-800 m-4 rounded-lg shadow-md",
			Title:     "text-xl font-bold bg-gradient-to-r from-purple-600 to-pink-600 bg-clip-text text-transparent mb-4",
			Content:   "text-gray-700 dark:text-gray-300",
		},
		CSS: `.header { background: linear-gradient(90deg, #a855f7, #ec4899, #ef4444); color: #ffffff; padding: 24px; border-radius: 8px 8px 0 0; }
.header .name, .header .contact-info { color: #ffffff; }
.section-title { border-bottom-color: #ec4899; }`,
	},
	{
		ID:          "tech",
		Name:        "Tech Professional",
		Description: "Modern tech-focused design with code-like elements",
		Preview:     "/templates/tech-preview.png",
		Styles: Styles{
			Container: "max-w-4xl mx-auto bg-gray-50 dark:bg-gray-900 font-mono",
			Header:    "bg-gray-900 dark:bg-black text-green-400 p-6 font-mono",
			Section:   "p-6 bg-white dark:bg-gray-800 m-4 border-l-4 border-green-500",
			Title:     "text-lg font-mono text-green-600 dark:text-green-400 mb-3",
			Content:   "text-gray-700 dark:text-gray-300 font-mono text-sm",
		},
		CSS: `body { font-family: 'SFMono-Regular', Menlo, Consolas, monospace; font-size: 13px; }
.header { background: #111827; color: #4ade80; padding: 20px; }
.header .name, .header .contact-info { color: #4ade80; }
.section { border-left: 4px solid #22c55e; padding-left: 16px; }`,
	},
	{
		ID:          "executive",
		Name:        "Executive Premium",
		Description: "Sophisticated design for senior-level positions",
		Preview:     "/templates/executive-preview.png",
		Styles: Styles{
			Container: "max-w-4xl mx-auto bg-white dark:bg-gray-900 shadow-2xl",
			Header:    "bg-gray-900 dark:bg-black text-white p-10",
			Section:   "p-8 border-b border-gray-200 dark:border-gray-700",
			Title:     "text-2xl font-bold text-gray-900 dark:text-gray-100 mb-6 tracking-tight",
			Content:   "text-gray-700 dark:text-gray-300 text-lg leading-relaxed",
		},
		CSS: `.header { background: #111827; color: #ffffff; padding: 32px; }
.header .name, .header .contact-info { color: #ffffff; }
.section { border-bottom: 1px solid #e5e7eb; padding-bottom: 16px; }`,
	},
}

// All 返回全部模板的副本，顺序固定，第一个为默认模板。
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// ByID 按 ID 查找模板。
func ByID(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Resolve 返回 ID 对应的模板，未知 ID 回退到第一个模板。
func Resolve(id string) Template {
	if t, ok := ByID(id); ok {
		return t
	}
	return catalog[0]
}

// StylesFor 返回模板的样式，未知 ID 使用第一个模板的样式。
func StylesFor(id string) Styles {
	return Resolve(id).Styles
}
