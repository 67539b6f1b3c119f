package booking

import (
	"fmt"
	"strings"
)

// PricingError reports package or extra ids that are not in the catalog.
// The quote that accompanies it excludes the unknown contributions; callers
// decide whether that partial total is usable.
type PricingError struct {
	Unknown []string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("unknown booking ids: %s", strings.Join(e.Unknown, ", "))
}

// Quote prices a draft: package hourly rate times hours, plus per-hour
// extras times hours, plus flat extras. Unknown ids contribute zero and are
// reported via *PricingError alongside the computed total.
func Quote(d Draft) (int, error) {
	hours := ParseHours(d.Duration)

	var total int
	var unknown []string

	if pkg, ok := packageByID(d.Package); ok {
		total += pkg.HourlyPrice * hours
	} else {
		unknown = append(unknown, d.Package)
	}

	for _, id := range dedupe(d.Extras) {
		extra, ok := extraByID(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if extra.PerHour {
			total += extra.Price * hours
		} else {
			total += extra.Price
		}
	}

	if len(unknown) > 0 {
		return total, &PricingError{Unknown: unknown}
	}
	return total, nil
}
