package content

import "strings"

// Collection invariants shared by every path that can install records into
// the tree: the typed update reducer, whole-section replacement, and the
// snapshot load. The valid* predicates sanitize free text as a side effect
// so a record that passes is also safe to serve.

func validStudioPackage(p *StudioPackage) bool {
	if len(p.Features) == 0 {
		return false
	}
	p.Description = SanitizeText(p.Description)
	return true
}

func validEditingPackage(p *EditingPackage) bool {
	return len(p.Features) > 0
}

func validEditingAddon(a *EditingAddon) bool {
	return len(a.Features) > 0
}

func validStreamPackage(p *StreamPackage) bool {
	return len(p.Features) > 0
}

func validMembershipTier(t *MembershipTier) bool {
	return len(t.Features) > 0
}

func validFAQ(f *FAQ) bool {
	if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
		return false
	}
	f.Answer = SanitizeText(f.Answer)
	return true
}

func checkStudioPackages(pkgs []StudioPackage) error {
	for i := range pkgs {
		if !validStudioPackage(&pkgs[i]) {
			return badRequestf("studio hire package %d (%q) has no features", i, pkgs[i].Name)
		}
	}
	return nil
}

func checkEditingPackages(pkgs []EditingPackage) error {
	for i := range pkgs {
		if !validEditingPackage(&pkgs[i]) {
			return badRequestf("editing package %d (%q) has no features", i, pkgs[i].Title)
		}
	}
	return nil
}

func checkEditingAddons(addons []EditingAddon) error {
	for i := range addons {
		if !validEditingAddon(&addons[i]) {
			return badRequestf("editing addon %d (%q) has no features", i, addons[i].Title)
		}
	}
	return nil
}

func checkStreamPackages(pkgs []StreamPackage) error {
	for i := range pkgs {
		if !validStreamPackage(&pkgs[i]) {
			return badRequestf("live streaming package %d (%q) has no features", i, pkgs[i].Title)
		}
	}
	return nil
}

func checkMembershipTiers(tiers []MembershipTier) error {
	for i := range tiers {
		if !validMembershipTier(&tiers[i]) {
			return badRequestf("membership tier %d (%q) has no features", i, tiers[i].Name)
		}
	}
	return nil
}

func checkFAQs(faqs []FAQ) error {
	for i := range faqs {
		if !validFAQ(&faqs[i]) {
			return badRequestf("faq %d must have both question and answer", i)
		}
	}
	return nil
}

func sanitizeStudioAddons(addons []StudioAddon) {
	for i := range addons {
		addons[i].Description = SanitizeText(addons[i].Description)
	}
}

func sanitizeHomepage(h *Homepage) {
	for i := range h.Features {
		h.Features[i].Description = SanitizeText(h.Features[i].Description)
	}
}

func sanitizeAbout(a *About) {
	a.Description = SanitizeText(a.Description)
	a.Mission = SanitizeText(a.Mission)
	a.Vision = SanitizeText(a.Vision)
}

// checkStudioHire and friends validate a whole section the way the per
// collection updates would, so replacing a section wholesale cannot smuggle
// in records the reducer rejects.

func checkStudioHire(sec *StudioHire) error {
	sec.HeroDescription = SanitizeText(sec.HeroDescription)
	if err := checkStudioPackages(sec.Packages); err != nil {
		return err
	}
	sanitizeStudioAddons(sec.Addons)
	return checkFAQs(sec.FAQs)
}

func checkEditing(sec *Editing) error {
	sec.HeroDescription = SanitizeText(sec.HeroDescription)
	if err := checkEditingPackages(sec.Packages); err != nil {
		return err
	}
	return checkEditingAddons(sec.Addons)
}

func checkLiveStreaming(sec *LiveStreaming) error {
	sec.HeroDescription = SanitizeText(sec.HeroDescription)
	return checkStreamPackages(sec.Packages)
}

func checkMembership(sec *Membership) error {
	sec.HeroDescription = SanitizeText(sec.HeroDescription)
	return checkMembershipTiers(sec.Tiers)
}
