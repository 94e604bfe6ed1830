package export

import (
	"strings"

	"resumeBuilder/internal/resume"
)

// PlainText 把简历整理成逐行文本，作为 AI 建议与 ATS 评分的输入。
func PlainText(r resume.Resume) string {
	d := r.Data
	lines := []string{
		"RESUME: " + r.Title,
		"",
		"PERSONAL INFORMATION",
		"Name: " + d.Personal.FullName,
		"Email: " + d.Personal.Email,
		"Phone: " + d.Personal.Mobile,
		"Address: " + d.Personal.Address,
		"About: " + d.Personal.About,
		"",
	}

	if len(d.Experience) > 0 {
		lines = append(lines, "EXPERIENCE")
		for _, e := range d.Experience {
			lines = append(lines,
				e.Position+" at "+e.Company,
				e.StartDate+" - "+e.EndDate,
				e.Description,
				"",
			)
		}
	}

	if len(d.Education) > 0 {
		lines = append(lines, "EDUCATION")
		for _, e := range d.Education {
			lines = append(lines,
				e.Degree+" in "+e.Field,
				e.Institution+" - "+e.GraduationDate,
				e.Details,
				"",
			)
		}
	}

	if len(d.Skills) > 0 {
		lines = append(lines, "SKILLS")
		for _, s := range d.Skills {
			lines = append(lines, s.Category+": "+s.Skills)
		}
		lines = append(lines, "")
	}

	if len(d.Projects) > 0 {
		lines = append(lines, "PROJECTS")
		for _, p := range d.Projects {
			lines = append(lines,
				p.Title,
				p.Description,
				"Technologies: "+p.Technologies,
				"",
			)
		}
	}

	if len(d.Certifications) > 0 {
		lines = append(lines, "CERTIFICATIONS")
		for _, c := range d.Certifications {
			lines = append(lines, c.Name+" - "+c.Issuer+" ("+c.Date+")")
		}
		lines = append(lines, "")
	}

	if len(d.Achievements) > 0 {
		lines = append(lines, "ACHIEVEMENTS")
		for _, a := range d.Achievements {
			lines = append(lines, a.Title+": "+a.Description)
		}
	}

	return strings.Join(lines, "\n")
}
