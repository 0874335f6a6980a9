package flow

import "slices"

// Kind names a wizard.
type Kind string

const (
	KindFreelancer Kind = "freelancer"
	KindCompany    Kind = "company"
)

// ParseKind validates a wizard kind.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindFreelancer:
		return KindFreelancer, true
	case KindCompany:
		return KindCompany, true
	default:
		return "", false
	}
}

// Step describes one wizard page and the fields validated before leaving it.
type Step struct {
	Number int      `json:"number"`
	Key    string   `json:"key"`
	Title  string   `json:"title"`
	Fields []string `json:"fields,omitempty"`
}

// Freelancer step numbers.
const (
	StepMethod     = 1
	StepCategory   = 2
	StepSkills     = 3
	StepTitle      = 4
	StepEmployment = 5
	StepEducation  = 6
	StepLanguages  = 7
	StepOverview   = 8
	StepRate       = 9
	StepPersonal   = 10
	StepReview     = 11

	manualStartStep   = StepCategory
	numberedStepCount = 10
)

// Company step numbers.
const (
	StepJobTitle    = 1
	StepJobSkills   = 2
	StepScope       = 3
	StepBudget      = 4
	StepDescription = 5
	StepJobReview   = 6

	companyStepCount = 6
)

var freelancerSteps = []Step{
	{Number: StepMethod, Key: "method", Title: "How would you like to tell us about yourself?"},
	{Number: StepCategory, Key: "category", Title: "Great, so what kind of work are you here to do?", Fields: []string{"mainCategory", "specialties"}},
	{Number: StepSkills, Key: "skills", Title: "Nearly there! What work are you here to do?", Fields: []string{"skills"}},
	{Number: StepTitle, Key: "title", Title: "Got it. Now, add a title to tell the world what you do.", Fields: []string{"professionalTitle"}},
	{Number: StepEmployment, Key: "employment", Title: "If you have relevant work experience, add it here.", Fields: []string{"employmentHistory"}},
	{Number: StepEducation, Key: "education", Title: "Clients like to know what you know - add your education here.", Fields: []string{"educationHistory"}},
	{Number: StepLanguages, Key: "languages", Title: "Looking good. Next, tell us which languages you speak.", Fields: []string{"englishProficiency", "otherLanguages"}},
	{Number: StepOverview, Key: "overview", Title: "Great. Now write a bio to tell the world about yourself.", Fields: []string{"professionalOverview"}},
	{Number: StepRate, Key: "rate", Title: "Now, let's set your hourly rate.", Fields: []string{"hourlyRate"}},
	{Number: StepPersonal, Key: "personal", Title: "A few last details, then you can check and publish your profile.", Fields: []string{
		"profilePhoto", "dateOfBirth", "country", "streetAddress", "city", "stateProvince", "zipCode", "phone",
	}},
	{Number: StepReview, Key: "review", Title: "Preview Profile"},
}

// budget is validated as a whole so an inverted hourly range blocks the step.
var companySteps = []Step{
	{Number: StepJobTitle, Key: "title", Title: "Let's start with a strong title.", Fields: []string{"jobTitle"}},
	{Number: StepJobSkills, Key: "skills", Title: "What are the main skills required for your work?", Fields: []string{"skills"}},
	{Number: StepScope, Key: "scope", Title: "Next, estimate the scope of your work.", Fields: []string{"projectSize", "projectDuration", "experienceLevel"}},
	{Number: StepBudget, Key: "budget", Title: "Tell us about your budget.", Fields: []string{"budget"}},
	{Number: StepDescription, Key: "description", Title: "Describe what you need", Fields: []string{"jobDescription", "attachments"}},
	{Number: StepJobReview, Key: "review", Title: "Review your Job Post"},
}

// FreelancerSteps returns the freelancer step table.
func FreelancerSteps() []Step {
	return cloneSteps(freelancerSteps)
}

// CompanySteps returns the company step table.
func CompanySteps() []Step {
	return cloneSteps(companySteps)
}

func cloneSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, step := range steps {
		step.Fields = slices.Clone(step.Fields)
		out[i] = step
	}
	return out
}

func stepAt(steps []Step, n int) Step {
	for _, step := range steps {
		if step.Number == n {
			return step
		}
	}
	return Step{Number: n}
}
