package suggest

// 模型调用成功但输出不可解析时使用的预置建议。

var huggingFaceCurated = []Suggestion{
	{
		Type:      "improvement",
		Section:   "summary",
		Original:  "Generic professional summary statement",
		Suggested: `Replace with a compelling 3-4 line summary that includes your years of experience, key technical skills, and quantifiable achievements. Example: "Results-driven Software Engineer with 5+ years developing scalable web applications using React and Node.js. Led cross-functional teams of 8+ members, delivered 15+ projects on time, and improved system performance by 40%."`,
		Reason:    "A specific, quantified summary immediately captures recruiter attention and passes ATS keyword filters more effectively than generic statements",
		Priority:  "high",
	},
	{
		Type:      "enhancement",
		Section:   "experience",
		Original:  "Basic job responsibility descriptions",
		Suggested: `Transform each bullet point to follow the STAR method (Situation, Task, Action, Result). Start with strong action verbs like "Architected," "Optimized," "Spearheaded." Include specific metrics: "Developed RESTful APIs serving 50,000+ daily users, reducing response time by 35% and increasing user satisfaction scores from 3.2 to 4.7/5."`,
		Reason:    "Quantified achievements with action verbs demonstrate concrete value delivery and are heavily weighted by ATS systems scanning for impact-driven candidates",
		Priority:  "high",
	},
	{
		Type:      "optimization",
		Section:   "skills",
		Original:  "Simple comma-separated skill list",
		Suggested: `Organize skills into strategic categories: "Programming Languages: JavaScript (Expert), Python (Advanced), Java (Intermediate)" | "Frameworks & Libraries: React.js, Node.js, Express.js, Django" | "Cloud & DevOps: AWS (EC2, S3, Lambda), Docker, Kubernetes, CI/CD" | "Databases: PostgreSQL, MongoDB, Redis." Include proficiency levels and prioritize skills mentioned in target job descriptions.`,
		Reason:    "Categorized skills with proficiency levels help recruiters quickly assess technical fit while ensuring ATS systems capture all relevant keywords for better matching",
		Priority:  "medium",
	},
	{
		Type:      "improvement",
		Section:   "contact",
		Original:  "Basic contact information only",
		Suggested: `Enhance contact section with professional links: "Email: john.doe@email.com | Phone: (555) 123-4567 | LinkedIn: linkedin.com/in/johndoe | GitHub: github.com/johndoe | Portfolio: johndoe.dev | Location: San Francisco, CA." Ensure all links are clickable and lead to updated, professional profiles.`,
		Reason:    "Comprehensive contact information with professional links provides recruiters multiple touchpoints to evaluate your work and increases your digital presence credibility",
		Priority:  "medium",
	},
	{
		Type:      "enhancement",
		Section:   "formatting",
		Original:  "Inconsistent formatting and structure",
		Suggested: "Implement consistent formatting: Use identical bullet point styles (•), maintain uniform spacing between sections (12pt), ensure consistent date formats (MM/YYYY), use the same font family throughout (Arial or Calibri), and maintain consistent indentation. Create clear visual hierarchy with section headers in bold and slightly larger font size.",
		Reason:    "Consistent formatting improves ATS parsing accuracy and creates a professional appearance that enhances readability for human reviewers",
		Priority:  "medium",
	},
	{
		Type:      "optimization",
		Section:   "keywords",
		Original:  "Missing industry-specific terminology",
		Suggested: `Integrate relevant keywords naturally throughout your resume based on target job descriptions. For tech roles, include: "Agile/Scrum methodology," "Cross-functional collaboration," "Code review," "Unit testing," "Performance optimization," "Scalable architecture," "API development," "Database design," "Version control (Git)," and specific technologies mentioned in job postings.`,
		Reason:    "Strategic keyword integration improves ATS matching scores by 60-80% while maintaining natural language flow that appeals to human readers",
		Priority:  "high",
	},
}

// huggingFaceFallback 在 HuggingFace 调用失败时返回。
var huggingFaceFallback = []Suggestion{
	{
		Type:      "improvement",
		Section:   "summary",
		Original:  "Generic professional summary",
		Suggested: "Create a compelling 3-4 line summary highlighting your experience, key skills, and quantifiable achievements with specific metrics and industry keywords",
		Reason:    "A targeted summary with quantified results immediately captures attention and improves ATS keyword matching",
		Priority:  "high",
	},
	{
		Type:      "enhancement",
		Section:   "experience",
		Original:  "Basic job descriptions",
		Suggested: "Use action verbs and include specific metrics, technologies used, and business impact for each role. Follow the STAR method for describing achievements",
		Reason:    "Quantified achievements demonstrate concrete value and are prioritized by both ATS systems and recruiters",
		Priority:  "high",
	},
}

var openRouterCurated = []Suggestion{
	{
		Type:      "optimization",
		Section:   "formatting",
		Original:  "Standard formatting",
		Suggested: "Use consistent bullet points, proper spacing, and clear section headers",
		Reason:    "Improves readability and ATS parsing accuracy",
		Priority:  "medium",
	},
	{
		Type:      "enhancement",
		Section:   "education",
		Original:  "Basic degree information",
		Suggested: "Include relevant coursework, GPA (if 3.5+), honors, and academic projects",
		Reason:    "Provides more context about your academic background",
		Priority:  "low",
	},
	{
		Type:      "improvement",
		Section:   "achievements",
		Original:  "Missing achievements section",
		Suggested: "Add awards, certifications, publications, or notable accomplishments",
		Reason:    "Highlights your unique value and distinguishes you from other candidates",
		Priority:  "medium",
	},
	{
		Type:      "optimization",
		Section:   "keywords",
		Original:  "Generic language",
		Suggested: "Include industry-specific keywords and technical terms from job descriptions",
		Reason:    "Improves ATS matching and shows industry knowledge",
		Priority:  "high",
	},
	{
		Type:      "enhancement",
		Section:   "projects",
		Original:  "Missing project details",
		Suggested: "Add relevant projects with technologies used and measurable outcomes",
		Reason:    "Demonstrates practical application of skills and problem-solving ability",
		Priority:  "medium",
	},
	{
		Type:      "improvement",
		Section:   "length",
		Original:  "Inconsistent content length",
		Suggested: "Maintain 1-2 pages with concise, impactful statements",
		Reason:    "Keeps recruiter attention and follows industry standards",
		Priority:  "low",
	},
}

func clone(in []Suggestion) []Suggestion {
	return append([]Suggestion(nil), in...)
}
