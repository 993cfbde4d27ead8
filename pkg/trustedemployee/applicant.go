package trustedemployee

import (
	"strconv"
	"strings"
	"time"

	util_xml "github.com/craibuc/trustedemployee/pkg/util/xml"
)

// Applicant is one screening subject. Field constraints mirror the
// vendor's batch screen schema and are enforced by Validate before
// encoding.
type Applicant struct {
	ApplicantID   string    `yaml:"applicant_id" validate:"required,max=50"`
	Package       int       `yaml:"package" validate:"oneof=1 2"`
	RequestCopy   bool      `yaml:"request_copy"`
	FirstName     string    `yaml:"first_name" validate:"required,max=20"`
	MiddleName    string    `yaml:"middle_name" validate:"max=20"`
	LastName      string    `yaml:"last_name" validate:"required,max=25"`
	BirthDate     time.Time `yaml:"birth_date" validate:"required"`
	SSN           string    `yaml:"ssn" validate:"required,ssn"`
	Phone         string    `yaml:"phone"`
	Email         string    `yaml:"email" validate:"max=255"`
	LicenseNumber string    `yaml:"license_number" validate:"max=30"`
	LicenseState  string    `yaml:"license_state" validate:"omitempty,len=2"`
	Street        string    `yaml:"street" validate:"max=40"`
	Unit          string    `yaml:"unit"`
	City          string    `yaml:"city" validate:"max=25"`
	State         string    `yaml:"state" validate:"required,len=2"`
	Zip           string    `yaml:"zip" validate:"required,len=5"`
	WorkState     string    `yaml:"work_state" validate:"required"`
}

// Validate checks the applicant against the vendor's field constraints.
func (a *Applicant) Validate() error {
	return validateApplicant(a)
}

// EncodeXML renders the applicant as the vendor's <Applicant> fragment.
// Element order is fixed; the vendor's parser is position-sensitive.
//
// The SSN is stripped to bare digits. The phone is stripped and
// regrouped as ###-###-#### only when exactly 10 digits remain;
// anything else passes through as the stripped digit string.
func (a *Applicant) EncodeXML() string {
	reportCopy := "NO"
	if a.RequestCopy {
		reportCopy = "YES"
	}

	var sb strings.Builder
	sb.WriteString("<Applicant>")
	writeElem(&sb, "ApplicantID", util_xml.Escape(a.ApplicantID))
	writeElem(&sb, "Package", strconv.Itoa(a.Package))
	writeElem(&sb, "ReportCopy", reportCopy)
	writeElem(&sb, "FirstName", util_xml.Escape(a.FirstName))
	writeElem(&sb, "MiddleName", util_xml.Escape(a.MiddleName))
	writeElem(&sb, "LastName", util_xml.Escape(a.LastName))
	writeElem(&sb, "BirthDate", a.BirthDate.Format("2006-01-02"))
	writeElem(&sb, "SSN", digitsOnly(a.SSN))
	writeElem(&sb, "Phone", formatPhone(a.Phone))
	writeElem(&sb, "Email", util_xml.Escape(a.Email))
	writeElem(&sb, "DLNumber", util_xml.Escape(a.LicenseNumber))
	writeElem(&sb, "DLState", a.LicenseState)
	writeElem(&sb, "Street", util_xml.Escape(a.Street))
	writeElem(&sb, "Unit", util_xml.Escape(a.Unit))
	writeElem(&sb, "City", util_xml.Escape(a.City))
	writeElem(&sb, "State", a.State)
	writeElem(&sb, "Zip", a.Zip)
	writeElem(&sb, "WorkState", a.WorkState)
	sb.WriteString("</Applicant>")

	return sb.String()
}

func writeElem(sb *strings.Builder, name, value string) {
	sb.WriteString("<")
	sb.WriteString(name)
	sb.WriteString(">")
	sb.WriteString(value)
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteString(">")
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func formatPhone(s string) string {
	d := digitsOnly(s)
	if len(d) != 10 {
		return d
	}
	return d[:3] + "-" + d[3:6] + "-" + d[6:]
}
