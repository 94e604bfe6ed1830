package resume

import "time"

// Resume 是一份完整的简历记录：元数据加上表单数据。
type Resume struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Data      Data      `json:"data"`
}

// Data 对应七个表单的内容，以及可选的外观定制。
type Data struct {
	Personal       Personal        `json:"personal"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []SkillCategory `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Achievements   []Achievement   `json:"achievements"`
	Customization  *Customization  `json:"customization,omitempty"`
}

type Personal struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
	About    string `json:"about"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
	Details        string `json:"details"`
}

// SkillCategory 的 Skills 字段为逗号分隔的技能列表。
type SkillCategory struct {
	Category string `json:"category"`
	Skills   string `json:"skills"`
}

type Project struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
}

type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credentialId"`
}

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Customization 描述模板与配色、字体选择。
type Customization struct {
	Template     string `json:"template"`
	HeadingColor string `json:"headingColor"`
	ContentColor string `json:"contentColor"`
	FontFamily   string `json:"fontFamily"`
}

// DefaultCustomization 返回未保存任何定制时使用的默认值。
func DefaultCustomization() Customization {
	return Customization{
		Template:     "modern",
		HeadingColor: "#1f2937",
		ContentColor: "#374151",
		FontFamily:   "Inter, sans-serif",
	}
}

// Merge 用 patch 中非空的字段覆盖 c，返回新的值。
func (c Customization) Merge(patch Customization) Customization {
	if patch.Template != "" {
		c.Template = patch.Template
	}
	if patch.HeadingColor != "" {
		c.HeadingColor = patch.HeadingColor
	}
	if patch.ContentColor != "" {
		c.ContentColor = patch.ContentColor
	}
	if patch.FontFamily != "" {
		c.FontFamily = patch.FontFamily
	}
	return c
}

// EffectiveCustomization 返回简历自带的定制；缺失的字段用默认值补齐。
func (d Data) EffectiveCustomization() Customization {
	if d.Customization == nil {
		return DefaultCustomization()
	}
	return DefaultCustomization().Merge(*d.Customization)
}

// Normalize 把 nil 切片替换为空切片，保证 JSON 输出为 [] 而非 null。
func (d *Data) Normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []SkillCategory{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
}
