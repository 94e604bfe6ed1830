package ats

const (
	recKeywords = `KEYWORDS - Critical Issue: Your resume lacks industry-specific keywords that ATS systems scan for. Add 8-12 relevant keywords from job descriptions such as "project management," "data analysis," "strategic planning," "cross-functional collaboration," "process improvement," and "stakeholder engagement." Place these naturally in your experience bullets and skills section. Example: "Led cross-functional team of 8 members to implement process improvement initiatives, resulting in 25% efficiency gain."`

	recContactInfo = `CONTACT INFO - Critical Issue: Missing essential contact information that ATS systems require. Ensure your resume includes: (1) Professional email address at the top, (2) Phone number with area code, (3) LinkedIn profile URL, (4) City, State format for location. Format example: "John Smith | john.smith@email.com | (555) 123-4567 | linkedin.com/in/johnsmith | New York, NY"`

	recSections = `SECTIONS - Major Issue: Your resume is missing key sections that ATS systems expect. Include these essential sections in order: (1) Professional Summary (3-4 lines highlighting your value), (2) Core Skills/Technical Skills (8-12 relevant skills), (3) Professional Experience (with quantified achievements), (4) Education, (5) Additional sections like Certifications or Projects if relevant. Each section should have clear, consistent headings.`

	recLength = `LENGTH - Major Issue: Your resume length is not optimized for ATS scanning. Aim for 400-600 words total. If too short: Add 2-3 more achievement bullets per role using the STAR method (Situation, Task, Action, Result). If too long: Remove outdated roles (10+ years old), consolidate similar responsibilities, and focus on quantified achievements. Example bullet: "Managed budget of $2.5M and reduced costs by 15% through vendor renegotiation and process optimization."`

	recReadability = `READABILITY - Improvement Needed: Enhance readability for both ATS and human reviewers. Use action verbs to start each bullet ("Developed," "Implemented," "Managed," "Achieved"). Keep sentences to 15-20 words maximum. Use consistent formatting with bullet points, not paragraphs. Include specific metrics and percentages. Example: "Developed training program for 50+ employees, improving productivity by 30% and reducing onboarding time from 6 weeks to 4 weeks."`

	recOverall = `OVERALL OPTIMIZATION - Priority Actions: (1) Research 3-5 job postings in your field and identify the top 10 most common keywords, then integrate them naturally throughout your resume. (2) Quantify every achievement with numbers, percentages, or dollar amounts. (3) Use a clean, ATS-friendly format with standard fonts (Arial, Calibri, Times New Roman) and avoid graphics, tables, or columns. (4) Include a Professional Summary that mirrors the job description language and highlights your top 3-4 qualifications.`

	recExcellent = `EXCELLENT WORK - Your resume demonstrates strong ATS optimization with proper keyword usage, complete contact information, well-structured sections, and appropriate length. To further enhance: (1) Continue updating keywords based on specific job applications, (2) Add more quantified achievements where possible, (3) Consider adding a "Key Achievements" section highlighting your top 3-4 career accomplishments with specific metrics and business impact.`
)
