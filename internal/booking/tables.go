// Package booking implements the studio booking price calculator and the
// four-step booking wizard state machine.
package booking

// Prices are whole pounds sterling.

// Package is a bookable studio package billed per hour.
type Package struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	HourlyPrice int    `json:"hourlyPrice"`
}

// Extra is an optional add-on. PerHour extras multiply by the booked hours,
// the rest are flat.
type Extra struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Price   int    `json:"price"`
	PerHour bool   `json:"perHour"`
}

// DurationOption is a selectable session length.
type DurationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProjectType classifies what the client is producing.
type ProjectType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var packages = []Package{
	{ID: "studio-engineer", Label: "Studio + Engineer", HourlyPrice: 75},
	{ID: "standard-editing", Label: "Studio + Engineer + Standard Editing", HourlyPrice: 115},
	{ID: "advanced-editing", Label: "Studio + Engineer + Advanced Editing", HourlyPrice: 155},
}

var extras = []Extra{
	{ID: "additional-camera", Label: "Additional Camera", Price: 30, PerHour: true},
	{ID: "4k-files", Label: "4K Video Files", Price: 15, PerHour: true},
	{ID: "social-snippets", Label: "Social Media Snippets", Price: 100},
	{ID: "teleprompter", Label: "Teleprompter", Price: 30},
	{ID: "remote-guest", Label: "Remote Guest Link", Price: 30},
}

var durations = []DurationOption{
	{Value: "1", Label: "1 Hour"},
	{Value: "2", Label: "2 Hours"},
	{Value: "3", Label: "3 Hours"},
	{Value: "4", Label: "4 Hours"},
	{Value: "5", Label: "5+ Hours"},
}

var projectTypes = []ProjectType{
	{ID: "podcast", Label: "Podcast"},
	{ID: "youtube", Label: "YouTube Video"},
	{ID: "livestream", Label: "Live Stream"},
	{ID: "interview", Label: "Interview"},
	{ID: "branded-content", Label: "Branded Content"},
	{ID: "other", Label: "Other"},
}

// Catalog bundles the static tables for API clients rendering the wizard.
type Catalog struct {
	Packages     []Package        `json:"packages"`
	Extras       []Extra          `json:"extras"`
	Durations    []DurationOption `json:"durations"`
	ProjectTypes []ProjectType    `json:"projectTypes"`
}

// Tables returns the static booking catalog. The result is a copy; callers
// may not mutate the canonical tables.
func Tables() Catalog {
	return Catalog{
		Packages:     append([]Package(nil), packages...),
		Extras:       append([]Extra(nil), extras...),
		Durations:    append([]DurationOption(nil), durations...),
		ProjectTypes: append([]ProjectType(nil), projectTypes...),
	}
}

func packageByID(id string) (Package, bool) {
	for _, p := range packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func extraByID(id string) (Extra, bool) {
	for _, e := range extras {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}

func projectTypeKnown(id string) bool {
	for _, p := range projectTypes {
		if p.ID == id {
			return true
		}
	}
	return false
}
