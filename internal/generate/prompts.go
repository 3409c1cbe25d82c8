package generate

import (
	"strings"

	"easyapply-backend/internal/jobs"
)

// Style selects the cover letter template.
type Style string

const (
	StyleProfessional Style = "professional"
	StyleCreative     Style = "creative"
)

// Normalize maps unrecognized styles to the professional default.
func (s Style) Normalize() Style {
	if s == StyleCreative {
		return StyleCreative
	}
	return StyleProfessional
}

const professionalTemplate = `You are an expert cover letter writer and recruitment strategist. Write a complete, ATS-optimized, 4-paragraph professional cover letter based on the job description and resume below. Use clear, confident language and match resume achievements to job requirements.

Job Description:
    Job title = {title},
    company name = {company},
    location = {location},
    job_type = {job_type},
    salary_range = {salary_range},
    requirements = {requirements},
    skills_required = {skills_required},
    experience_level = {experience_level},

Candidate Resume:
{resume_content}

Instructions:
- Focus on the 3-4 most important job requirements.
- Use only resume evidence to match those requirements (quantified where possible); do not falsify any information.
- Integrate relevant job keywords naturally.
- Paragraph 1: State the role, express enthusiasm, give a value-driven hook.
- Paragraph 2: Align experience with job duties using strong examples.
- Paragraph 3: Show interest in the company and culture fit.
- Paragraph 4: Reaffirm fit, express interest in interview, close professionally.

Constraints:
- Word count: 350-500 words.
- Output must be ready-to-use.
- End with a sign-off and candidate's full name.
- Use natural, simple words and grammatical expressions in human-like language.
- Make sure there are no placeholders or incomplete letters.`

const creativeTemplate = `You are a creative cover letter expert who helps candidates in marketing, design, and innovation roles stand out. Write a memorable, story-driven, and personality-rich cover letter based on the job description and resume below.

Job Description:
    Job title = {title},
    company name = {company},
    location = {location},
    job_type = {job_type},
    salary_range = {salary_range},
    requirements = {requirements},
    skills_required = {skills_required},
    experience_level = {experience_level},

Candidate Resume:
{resume_content}

Instructions:
- Use only resume evidence to match those requirements (quantified where possible); do not falsify any information.
- Avoid generic openings like "I'm applying for..." or "I am excited to apply...".
- Start with a bold hook: a question, anecdote, or statement linking passion to the company.
- Use storytelling to showcase 1-2 standout achievements (STAR method recommended).
- Reflect the tone/style of the company (e.g., bold, quirky, mission-driven).
- Express genuine excitement for the role and cultural fit.
- End with a confident, creative call to action.
- Close with a suitable sign-off and the candidate's full name.

Constraints:
- Word count: 350-500 words.
- Output must be ready-to-use.
- Use natural, human-like language that balances creativity with professionalism.
- Use natural, simple words and grammatical expressions in human-like language.
- Make sure there are no placeholders or incomplete letters.`

// BuildPrompt interpolates trimmed job fields and resume text into the
// style-selected template. Missing fields are filled with "Not specified" so
// the model never sees empty slots.
func BuildPrompt(style Style, job jobs.JobFields, resumeText string) string {
	template := professionalTemplate
	if style.Normalize() == StyleCreative {
		template = creativeTemplate
	}

	resume := strings.TrimSpace(resumeText)
	if resume == "" {
		resume = "No resume content provided"
	}

	jobType := strings.TrimSpace(string(job.JobType))
	if jobType == "" || jobType == string(jobs.JobTypeUnknown) {
		jobType = "Not specified"
	}

	return strings.NewReplacer(
		"{title}", fieldOrNotSpecified(job.Title),
		"{company}", fieldOrNotSpecified(job.Company),
		"{location}", fieldOrNotSpecified(job.Location),
		"{job_type}", jobType,
		"{salary_range}", fieldOrNotSpecified(job.SalaryRange),
		"{requirements}", fieldOrNotSpecified(job.Requirements),
		"{skills_required}", fieldOrNotSpecified(job.SkillsRequired),
		"{experience_level}", fieldOrNotSpecified(job.ExperienceLevel),
		"{resume_content}", resume,
	).Replace(template)
}

func fieldOrNotSpecified(s *string) string {
	if s == nil {
		return "Not specified"
	}
	if trimmed := strings.TrimSpace(*s); trimmed != "" {
		return trimmed
	}
	return "Not specified"
}
