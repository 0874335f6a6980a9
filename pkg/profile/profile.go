// Package profile defines the freelancer profile record collected by the
// freelancer onboarding wizard, its validation rules and the mutation helpers
// used by the individual steps.
package profile

// Proficiency is a spoken-language proficiency level.
type Proficiency string

const (
	ProficiencyBasic          Proficiency = "basic"
	ProficiencyConversational Proficiency = "conversational"
	ProficiencyFluent         Proficiency = "fluent"
	ProficiencyNative         Proficiency = "native"
)

// Proficiencies lists the levels in display order.
var Proficiencies = []Proficiency{
	ProficiencyBasic,
	ProficiencyConversational,
	ProficiencyFluent,
	ProficiencyNative,
}

// Label returns the display label of the level.
func (p Proficiency) Label() string {
	switch p {
	case ProficiencyBasic:
		return "Basic"
	case ProficiencyConversational:
		return "Conversational"
	case ProficiencyFluent:
		return "Fluent"
	case ProficiencyNative:
		return "Native or Bilingual"
	default:
		return string(p)
	}
}

// MonthYear is a month/year pair as picked from the month and year selects.
type MonthYear struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

// IsZero reports whether neither part is set.
func (m MonthYear) IsZero() bool {
	return m.Month == "" && m.Year == ""
}

// Employment is one work history entry.
type Employment struct {
	Title         string    `json:"title" validate:"required"`
	Company       string    `json:"company" validate:"required"`
	Location      string    `json:"location,omitempty"`
	Country       string    `json:"country,omitempty"`
	IsCurrentRole bool      `json:"isCurrentRole"`
	StartDate     MonthYear `json:"startDate"`
	EndDate       MonthYear `json:"endDate"`
	Description   string    `json:"description,omitempty" validate:"max=2000"`
}

// DateRange holds the attended-from and attended-to years of an education
// entry.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Education is one education entry.
type Education struct {
	School        string    `json:"school" validate:"required"`
	Degree        string    `json:"degree,omitempty"`
	FieldOfStudy  string    `json:"fieldOfStudy,omitempty"`
	DatesAttended DateRange `json:"datesAttended"`
	Description   string    `json:"description,omitempty" validate:"max=2000"`
}

// Language is one additional spoken language.
type Language struct {
	Language    string      `json:"language" validate:"required"`
	Proficiency Proficiency `json:"proficiency" validate:"required,oneof=basic conversational fluent native"`
}

// Phone is a phone number split into dial code and local number.
type Phone struct {
	CountryCode string `json:"countryCode" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"min=5"`
}

// Profile is the complete freelancer onboarding record.
type Profile struct {
	MainCategory         string       `json:"mainCategory" validate:"required"`
	Specialties          []string     `json:"specialties" validate:"min=1,max=3"`
	Skills               []string     `json:"skills" validate:"min=1,max=15,dive,min=1,max=50"`
	ProfessionalTitle    string       `json:"professionalTitle" validate:"min=10,max=70"`
	EmploymentHistory    []Employment `json:"employmentHistory" validate:"min=1,dive"`
	EducationHistory     []Education  `json:"educationHistory" validate:"min=1,dive"`
	EnglishProficiency   Proficiency  `json:"englishProficiency" validate:"required,oneof=basic conversational fluent native"`
	OtherLanguages       []Language   `json:"otherLanguages" validate:"dive"`
	ProfessionalOverview string       `json:"professionalOverview" validate:"min=100,max=5000"`
	HourlyRate           *float64     `json:"hourlyRate" validate:"required,min=3,max=999"`
	ProfilePhoto         string       `json:"profilePhoto" validate:"required"`
	DateOfBirth          string       `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Country              string       `json:"country" validate:"required"`
	StreetAddress        string       `json:"streetAddress" validate:"required"`
	AptSuite             string       `json:"aptSuite"`
	City                 string       `json:"city" validate:"required"`
	StateProvince        string       `json:"stateProvince" validate:"required"`
	ZipCode              string       `json:"zipCode" validate:"required"`
	Phone                Phone        `json:"phone"`
}

// DefaultCountryCode is the dial code a new profile starts with.
const DefaultCountryCode = "+1"

// Defaults returns the record a new freelancer wizard starts from.
func Defaults() Profile {
	return Profile{
		Specialties:        []string{},
		Skills:             []string{},
		EmploymentHistory:  []Employment{},
		EducationHistory:   []Education{},
		EnglishProficiency: ProficiencyBasic,
		OtherLanguages:     []Language{},
		Phone:              Phone{CountryCode: DefaultCountryCode},
	}
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.Specialties = cloneSlice(p.Specialties)
	p.Skills = cloneSlice(p.Skills)
	p.EmploymentHistory = cloneSlice(p.EmploymentHistory)
	p.EducationHistory = cloneSlice(p.EducationHistory)
	p.OtherLanguages = cloneSlice(p.OtherLanguages)
	if p.HourlyRate != nil {
		rate := *p.HourlyRate
		p.HourlyRate = &rate
	}
	return p
}

func cloneSlice[E any](in []E) []E {
	if in == nil {
		return nil
	}
	return append(make([]E, 0, len(in)), in...)
}

// NewEmployment returns the blank entry the employment editor opens with.
func NewEmployment() Employment {
	return Employment{}
}

// NewEducation returns the blank entry the education editor opens with.
func NewEducation() Education {
	return Education{}
}

// NewLanguage returns the blank entry the language editor opens with.
func NewLanguage() Language {
	return Language{Proficiency: ProficiencyBasic}
}
