package booking

import "strconv"

// DefaultDuration is preselected for new drafts.
const DefaultDuration = "2"

// Draft carries the client's answers as they move through the wizard.
// Duration stays a string so "5+ Hours" style values round-trip; ParseHours
// interprets it for pricing.
type Draft struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Package     string   `json:"package"`
	Date        string   `json:"date"`
	Duration    string   `json:"duration"`
	Extras      []string `json:"extras"`
	ProjectType string   `json:"projectType"`
	Notes       string   `json:"notes"`
}

// DraftPatch is a partial draft update. Nil fields are left untouched;
// Extras replaces the whole set.
type DraftPatch struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Package     *string   `json:"package"`
	Date        *string   `json:"date"`
	Duration    *string   `json:"duration"`
	Extras      *[]string `json:"extras"`
	ProjectType *string   `json:"projectType"`
	Notes       *string   `json:"notes"`
}

func (p DraftPatch) apply(d Draft) Draft {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.Name, p.Name)
	set(&d.Email, p.Email)
	set(&d.Phone, p.Phone)
	set(&d.Package, p.Package)
	set(&d.Date, p.Date)
	set(&d.Duration, p.Duration)
	set(&d.ProjectType, p.ProjectType)
	set(&d.Notes, p.Notes)
	if p.Extras != nil {
		d.Extras = dedupe(*p.Extras)
	}
	return d
}

// fields returns the names of the draft fields the patch touches, used to
// clear matching validation errors.
func (p DraftPatch) fields() []string {
	var names []string
	add := func(present bool, name string) {
		if present {
			names = append(names, name)
		}
	}
	add(p.Name != nil, "name")
	add(p.Email != nil, "email")
	add(p.Phone != nil, "phone")
	add(p.Package != nil, "package")
	add(p.Date != nil, "date")
	add(p.Duration != nil, "duration")
	add(p.Extras != nil, "extras")
	add(p.ProjectType != nil, "projectType")
	add(p.Notes != nil, "notes")
	return names
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ParseHours interprets a free-form duration selection as billable hours.
// Unparseable, empty, or zero values fall back to 2 hours; negative values
// bill as one.
func ParseHours(duration string) int {
	hours, err := strconv.Atoi(duration)
	if err != nil || hours == 0 {
		return 2
	}
	if hours < 1 {
		return 1
	}
	return hours
}
