package jobs

import (
	"reflect"
	"strings"
	"testing"
)

func strVal(t *testing.T, field string, got *string) string {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected a value, got nil", field)
	}
	return *got
}

func TestExtractDetailsEndToEnd(t *testing.T) {
	raw := "Job Title: Data Scientist\nCompany: Acme Corp\nLocation: Remote\nFull-time\nSalary: $90,000 - $110,000\nRequirements: 3+ years Python"

	fields := ExtractDetails(raw)

	if got := strVal(t, "title", fields.Title); got != "Data Scientist" {
		t.Errorf("title = %q, want %q", got, "Data Scientist")
	}
	if got := strVal(t, "company", fields.Company); got != "Acme Corp" {
		t.Errorf("company = %q, want %q", got, "Acme Corp")
	}
	if got := strVal(t, "location", fields.Location); got != "Remote" {
		t.Errorf("location = %q, want %q", got, "Remote")
	}
	if fields.JobType != JobTypeFullTime {
		t.Errorf("job_type = %q, want %q", fields.JobType, JobTypeFullTime)
	}
	salary := strVal(t, "salary_range", fields.SalaryRange)
	if !strings.Contains(salary, "90,000") || !strings.Contains(salary, "110,000") {
		t.Errorf("salary_range = %q, want both bounds present", salary)
	}
	// "3+ years" carries whitespace between the sign and the unit, so the
	// years heuristic must not fire, and no seniority keyword is present.
	if fields.ExperienceLevel != nil {
		t.Errorf("experience_level = %q, want nil", *fields.ExperienceLevel)
	}
}

func TestExtractDetailsIdempotent(t *testing.T) {
	raw := "Position: Backend Engineer\nCompany: Initech\nRemote\n5 years experience with Go and PostgreSQL"

	first := ExtractDetails(raw)
	second := ExtractDetails(raw)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction diverged:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestExtractDetailsGracefulDegradation(t *testing.T) {
	for _, raw := range []string{"", "   \n\t ", "lorem ipsum dolor sit amet 123"} {
		fields := ExtractDetails(raw)

		if fields.Title != nil || fields.Company != nil || fields.Location != nil ||
			fields.SalaryRange != nil || fields.Requirements != nil ||
			fields.SkillsRequired != nil || fields.ExperienceLevel != nil {
			t.Errorf("input %q: expected all optional fields nil, got %+v", raw, fields)
		}
		if fields.JobType != JobTypeUnknown {
			t.Errorf("input %q: job_type = %q, want %q", raw, fields.JobType, JobTypeUnknown)
		}
	}
}

func TestExtractTitleBoundary(t *testing.T) {
	atLimit := strings.Repeat("A", 120)
	fields := ExtractDetails("Job Title: " + atLimit)
	if got := strVal(t, "title", fields.Title); got != atLimit {
		t.Errorf("title at 120 chars rejected, got %q", got)
	}

	overLimit := strings.Repeat("A", 121)
	fields = ExtractDetails("Job Title: " + overLimit)
	if fields.Title != nil {
		t.Errorf("title at 121 chars accepted: %q", *fields.Title)
	}
}

func TestExtractTitleMarkerAndFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"marker", "Role: Site Reliability Engineer\nWe run things.", "Site Reliability Engineer"},
		{"marker with suffix", "Position: Product Designer - Remote\nJoin us.", "Product Designer"},
		{"keyword lead line", "Senior Project Manager\nWe are building bridges.", "Senior Project Manager"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractDetails(tt.raw)
			if got := strVal(t, "title", fields.Title); got != tt.want {
				t.Errorf("title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractLocationMarkerWinsOverRemote(t *testing.T) {
	raw := "Job Title: Accountant\nLocation: Lagos, Nigeria\nHybrid role, remote on Fridays."

	fields := ExtractDetails(raw)
	if got := strVal(t, "location", fields.Location); got != "Lagos, Nigeria" {
		t.Errorf("location = %q, want explicit marker value", got)
	}
}

func TestExtractLocationRemoteFallback(t *testing.T) {
	for _, raw := range []string{
		"Job Title: Writer\nThis role is fully remote.",
		"Job Title: Writer\nWork from home, flexible hours.",
		"Job Title: Writer\nWork from anywhere in the world.",
	} {
		fields := ExtractDetails(raw)
		if got := strVal(t, "location", fields.Location); got != "Remote" {
			t.Errorf("input %q: location = %q, want %q", raw, got, "Remote")
		}
	}
}

func TestExtractJobTypeOrder(t *testing.T) {
	tests := []struct {
		raw  string
		want JobType
	}{
		{"This is a full-time position", JobTypeFullTime},
		{"Part time shifts available", JobTypePartTime},
		{"6 month contract engagement", JobTypeContract},
		{"Summer internship program", JobTypeInternship},
		{"Fully remote team", JobTypeRemote},
		// full_time is checked before remote, so the first class wins.
		{"Full-time remote role", JobTypeFullTime},
		{"No employment terms here", JobTypeUnknown},
	}
	for _, tt := range tests {
		fields := ExtractDetails(tt.raw)
		if fields.JobType != tt.want {
			t.Errorf("input %q: job_type = %q, want %q", tt.raw, fields.JobType, tt.want)
		}
	}
}

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"labeled range", "Compensation: $70,000 - $85,000 per year", "$70,000 - $85,000 per year"},
		{"bare amount", "We pay €4,500 per month for this role.", "€4,500 per month"},
		{"hourly", "Rate is $45/hour depending on experience.", "$45/hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractDetails(tt.raw)
			if got := strVal(t, "salary_range", fields.SalaryRange); got != tt.want {
				t.Errorf("salary_range = %q, want %q", got, tt.want)
			}
		})
	}

	fields := ExtractDetails("Salary: competitive")
	if fields.SalaryRange != nil {
		t.Errorf("salary without digits accepted: %q", *fields.SalaryRange)
	}
}

func TestExtractRequirements(t *testing.T) {
	raw := "About the role.\nRequirements: Bachelor's degree and strong writing ability"
	fields := ExtractDetails(raw)
	if got := strVal(t, "requirements", fields.Requirements); !strings.Contains(got, "Bachelor's degree") {
		t.Errorf("requirements = %q", got)
	}

	// Captures shorter than the minimum are discarded.
	fields = ExtractDetails("Requirements: none")
	if fields.Requirements != nil {
		t.Errorf("short requirements accepted: %q", *fields.Requirements)
	}
}

func TestExtractSkillsSortedAndDeduplicated(t *testing.T) {
	raw := "We need Python, python, Docker and strong communication. PostgreSQL a plus."

	fields := ExtractDetails(raw)
	got := strVal(t, "skills_required", fields.SkillsRequired)
	want := "communication, Docker, PostgreSQL, Python"
	if got != want {
		t.Errorf("skills_required = %q, want %q", got, want)
	}
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	// "Google" must not match the "Go" entry.
	fields := ExtractDetails("We use Google Workspace for everything.")
	if fields.SkillsRequired != nil && strings.Contains(*fields.SkillsRequired, "Go,") {
		t.Errorf("partial word matched as skill: %q", *fields.SkillsRequired)
	}
}

func TestExtractExperienceLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Senior Software Engineer wanted", LevelSenior},
		{"Great opportunity for a new grad", LevelJunior},
		{"Looking for an experienced accountant", LevelMidLevel},
		{"Internship with mentorship", LevelInternship},
		{"Requires 1 year of practice", LevelJunior},
		{"Requires 4 years in marketing", LevelMidLevel},
		{"Requires 10+years in litigation", LevelSenior},
		// Keywords outrank the years heuristic.
		{"Junior role, 10 years of company history", LevelJunior},
	}
	for _, tt := range tests {
		fields := ExtractDetails(tt.raw)
		if got := strVal(t, "experience_level", fields.ExperienceLevel); got != tt.want {
			t.Errorf("input %q: experience_level = %q, want %q", tt.raw, got, tt.want)
		}
	}

	fields := ExtractDetails("No hints about seniority in this text")
	if fields.ExperienceLevel != nil {
		t.Errorf("experience_level = %q, want nil", *fields.ExperienceLevel)
	}
}
