package templates

// Option 是定制面板中的一个可选项。
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Palette 汇总标题色、正文色与字体的候选值。
type Palette struct {
	HeadingColors []Option `json:"headingColors"`
	ContentColors []Option `json:"contentColors"`
	Fonts         []Option `json:"fonts"`
}

var headingColors = []Option{
	{Name: "Dark Gray", Value: "#1f2937"},
	{Name: "Navy Blue", Value: "#1e3a8a"},
	{Name: "Forest Green", Value: "#166534"},
	{Name: "Burgundy", Value: "#7c2d12"},
	{Name: "Deep Purple", Value: "#581c87"},
	{Name: "Charcoal", Value: "#374151"},
	{Name: "Teal", Value: "#0f766e"},
	{Name: "Slate", Value: "#475569"},
}

var contentColors = []Option{
	{Name: "Medium Gray", Value: "#374151"},
	{Name: "Dark Slate", Value: "#475569"},
	{Name: "Charcoal", Value: "#4b5563"},
	{Name: "Steel Gray", Value: "#6b7280"},
	{Name: "Cool Gray", Value: "#64748b"},
	{Name: "Warm Gray", Value: "#78716c"},
	{Name: "Neutral Gray", Value: "#71717a"},
	{Name: "Stone", Value: "#57534e"},
}

var fonts = []Option{
	{Name: "Inter", Value: "Inter, sans-serif"},
	{Name: "Roboto", Value: "Roboto, sans-serif"},
	{Name: "Open Sans", Value: "'Open Sans', sans-serif"},
	{Name: "Lato", Value: "Lato, sans-serif"},
	{Name: "Source Sans Pro", Value: "'Source Sans Pro', sans-serif"},
	{Name: "Montserrat", Value: "Montserrat, sans-serif"},
	{Name: "Poppins", Value: "Poppins, sans-serif"},
	{Name: "Nunito Sans", Value: "'Nunito Sans', sans-serif"},
	{Name: "Work Sans", Value: "'Work Sans', sans-serif"},
	{Name: "IBM Plex Sans", Value: "'IBM Plex Sans', sans-serif"},
}

// DefaultPalette 返回定制面板的全部候选项。
func DefaultPalette() Palette {
	return Palette{
		HeadingColors: append([]Option(nil), headingColors...),
		ContentColors: append([]Option(nil), contentColors...),
		Fonts:         append([]Option(nil), fonts...),
	}
}
