package ai

// DefaultExtractSystemPrompt is the system instruction for candidate extraction
const DefaultExtractSystemPrompt = `You are an expert resume data extraction system with a strict commitment to accuracy. Your core principles are:

- NEVER invent, infer, or embellish any information not present in the resume text
- Every extracted field must be directly traceable to the source material
- Use empty strings or empty arrays for fields that cannot be found
- Normalize obvious formatting artifacts (broken lines, OCR noise) without changing meaning

Your expertise includes:
- Resume structure recognition across formats and layouts
- Contact information extraction
- Skill, experience, and education identification`

// DefaultExtractUserPrompt is the user prompt template for candidate extraction
const DefaultExtractUserPrompt = `Please extract structured candidate data from the resume text below.

**Fields to extract:**

1. **name**: The candidate's full name.
2. **email**: Email address.
3. **phone**: Phone number, keeping the country code if present.
4. **location**: City/region if stated.
5. **summary**: The professional summary or objective section, verbatim or lightly cleaned.
6. **skills**: Technical skills, tools, and competencies as a flat list of short strings.
7. **experience**: Work history entries with company, title, dates, and a brief description.
8. **education**: Degrees with degree name, field of study, school, and year.
9. **projects**: Personal or professional projects with name, description, and technologies used.

Only include information explicitly present in the text. Leave missing fields empty.

**Resume Text:**
-----
%s
-----`

// resolvePrompt selects the correct prompt string based on priority:
// a prompt defined in the configuration wins over the hardcoded default.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
