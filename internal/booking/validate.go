package booking

import "strings"

// Wizard steps.
const (
	StepPersonalInfo   = 1
	StepPackage        = 2
	StepProjectDetails = 3
	StepReview         = 4
)

// ValidateStep checks the draft fields owned by one wizard step and returns
// field-keyed error messages. An empty map means the step passes. The review
// step has no fields of its own.
func ValidateStep(d Draft, step int) map[string]string {
	errs := make(map[string]string)
	switch step {
	case StepPersonalInfo:
		if strings.TrimSpace(d.Name) == "" {
			errs["name"] = "Name is required"
		}
		if !validEmail(d.Email) {
			errs["email"] = "A valid email address is required"
		}
		if strings.TrimSpace(d.Phone) == "" {
			errs["phone"] = "Phone number is required"
		}
		if strings.TrimSpace(d.Date) == "" {
			errs["date"] = "Preferred date is required"
		}
	case StepPackage:
		if _, ok := packageByID(d.Package); !ok {
			errs["package"] = "Please choose a package"
		}
	case StepProjectDetails:
		if !projectTypeKnown(d.ProjectType) {
			errs["projectType"] = "Please choose a project type"
		}
	case StepReview:
		// Nothing owned by the review step.
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail applies the same lightweight shape check the booking form
// always has: something before an @, and a dot somewhere after it.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	rest := email[at+1:]
	dot := strings.Index(rest, ".")
	return dot >= 1 && dot < len(rest)-1
}
