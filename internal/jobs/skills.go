package jobs

import (
	"regexp"
	"sort"
	"strings"
)

// skillVocabulary covers soft, hard and domain skills across the industries
// the service sees postings from. Matching is case-insensitive on word
// boundaries so "Go" never fires inside "Google".
var skillVocabulary = map[string][]string{
	"soft_skills": {
		"communication", "leadership", "teamwork", "collaboration", "critical thinking",
		"problem solving", "analytical", "negotiation", "organization", "presentation",
		"customer service", "adaptability", "creativity", "time management", "multitasking",
		"conflict resolution", "attention to detail", "decision making", "strategic thinking",
	},
	"business_sales_marketing": {
		"salesforce", "CRM", "HubSpot", "Zoho", "SEO", "SEM", "Google Analytics",
		"digital marketing", "content strategy", "copywriting", "market research",
		"lead generation", "B2B sales", "email marketing", "social media marketing",
		"public relations", "brand management",
	},
	"healthcare": {
		"patient care", "clinical", "EMR", "EHR", "nursing", "phlebotomy",
		"medication administration", "vital signs monitoring", "HIPAA compliance",
		"diagnostic imaging", "surgical assistance", "CPR", "first aid",
	},
	"education_training": {
		"lesson planning", "curriculum development", "classroom management",
		"student assessment", "educational technology", "mentoring", "tutoring",
	},
	"finance_hr_admin": {
		"bookkeeping", "QuickBooks", "payroll processing", "financial analysis",
		"budgeting", "forecasting", "tax preparation", "accounts receivable",
		"accounts payable", "HRIS", "recruitment", "employee relations", "compliance",
	},
	"logistics_operations": {
		"supply chain management", "inventory management", "warehouse operations",
		"fleet management", "logistics planning", "procurement", "order fulfillment",
		"SAP", "Oracle ERP",
	},
	"tech_it": {
		"Python", "Go", "Java", "JavaScript", "C++", "C#", "Ruby", "PHP",
		"Django", "FastAPI", "Flask", "Spring Boot", "SQL", "PostgreSQL", "MySQL", "MongoDB",
		"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "CI/CD",
		"Jenkins", "Ansible", "Kafka", "RabbitMQ", "REST API", "GraphQL", "React", "Angular",
		"Vue.js", "HTML", "CSS", "Git", "Linux", "Bash scripting",
	},
	"project_management": {
		"Agile", "Scrum", "Kanban", "Waterfall", "Jira", "Trello", "Asana",
		"MS Project", "risk management", "stakeholder management",
	},
}

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() []skillPattern {
	var patterns []skillPattern
	for _, names := range skillVocabulary {
		for _, name := range names {
			patterns = append(patterns, skillPattern{
				name: name,
				re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
			})
		}
	}
	return patterns
}

// extractSkills returns the matched vocabulary entries joined with ", ",
// deduplicated and sorted case-insensitively so the output is stable.
func extractSkills(text string) *string {
	seen := make(map[string]struct{})
	for _, p := range skillPatterns {
		if _, dup := seen[p.name]; dup {
			continue
		}
		if p.re.MatchString(text) {
			seen[p.name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	found := make([]string, 0, len(seen))
	for name := range seen {
		found = append(found, name)
	}
	sort.Slice(found, func(i, j int) bool {
		return strings.ToLower(found[i]) < strings.ToLower(found[j])
	})
	return optional(strings.Join(found, ", "))
}
