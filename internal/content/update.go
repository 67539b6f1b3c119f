package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BadRequestError marks a mutation rejected because of caller input. The
// HTTP layer maps it to a 400 response.
type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string { return e.msg }

func badRequestf(format string, args ...any) error {
	return &BadRequestError{msg: fmt.Sprintf(format, args...)}
}

// PageHero carries the hero copy shared by every service page section.
type PageHero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Video       string `json:"video"`
}

// Update is one typed mutation of the content tree. Each editable section or
// collection has its own variant; all of them are dispatched through the
// store's single reducer. This replaces free-form path addressing: the
// payload shape is fixed per operation, so a malformed write is rejected at
// decode time instead of silently landing in the wrong spot.
type Update interface {
	// Op returns the wire name of the operation ("set-studio-hire-packages").
	Op() string
}

type SetCompanyInfo struct {
	CompanyName string `json:"companyName"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
}

type SetContactInfo struct {
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

type SetSocialLinks struct {
	SocialMedia SocialMedia `json:"socialMedia"`
}

type SetHomeHero struct {
	Hero Hero `json:"hero"`
}

type SetStudioHireHero struct {
	Hero PageHero `json:"hero"`
}

type SetStudioHireImages struct {
	AddonImages []string `json:"addonImages"`
}

type SetStudioHirePackages struct {
	Packages []StudioPackage `json:"packages"`
}

type SetStudioHireAddons struct {
	Addons []StudioAddon `json:"addons"`
}

type SetStudioHireFAQs struct {
	FAQs []FAQ `json:"faqs"`
}

type SetEditingHero struct {
	Hero PageHero `json:"hero"`
}

type SetEditingImages struct {
	AddonImages []string `json:"addonImages"`
}

type SetEditingPackages struct {
	Packages []EditingPackage `json:"packages"`
}

type SetEditingAddons struct {
	Addons []EditingAddon `json:"addons"`
}

type SetLiveStreamingHero struct {
	Hero PageHero `json:"hero"`
}

type SetLiveStreamingPackages struct {
	Packages []StreamPackage `json:"packages"`
}

type SetMembershipHero struct {
	Hero PageHero `json:"hero"`
}

type SetMembershipTiers struct {
	Tiers []MembershipTier `json:"tiers"`
}

type SetHomepage struct {
	Homepage Homepage `json:"homepage"`
}

type SetAbout struct {
	About About `json:"about"`
}

func (SetCompanyInfo) Op() string            { return "set-company-info" }
func (SetContactInfo) Op() string            { return "set-contact-info" }
func (SetSocialLinks) Op() string            { return "set-social-links" }
func (SetHomeHero) Op() string               { return "set-home-hero" }
func (SetStudioHireHero) Op() string         { return "set-studio-hire-hero" }
func (SetStudioHireImages) Op() string       { return "set-studio-hire-images" }
func (SetStudioHirePackages) Op() string     { return "set-studio-hire-packages" }
func (SetStudioHireAddons) Op() string       { return "set-studio-hire-addons" }
func (SetStudioHireFAQs) Op() string         { return "set-studio-hire-faqs" }
func (SetEditingHero) Op() string            { return "set-editing-hero" }
func (SetEditingImages) Op() string          { return "set-editing-images" }
func (SetEditingPackages) Op() string        { return "set-editing-packages" }
func (SetEditingAddons) Op() string          { return "set-editing-addons" }
func (SetLiveStreamingHero) Op() string      { return "set-live-streaming-hero" }
func (SetLiveStreamingPackages) Op() string  { return "set-live-streaming-packages" }
func (SetMembershipHero) Op() string         { return "set-membership-hero" }
func (SetMembershipTiers) Op() string        { return "set-membership-tiers" }
func (SetHomepage) Op() string               { return "set-homepage" }
func (SetAbout) Op() string                  { return "set-about" }

var updateDecoders = map[string]func(raw []byte) (Update, error){
	"set-company-info":            decodeInto[SetCompanyInfo],
	"set-contact-info":            decodeInto[SetContactInfo],
	"set-social-links":            decodeInto[SetSocialLinks],
	"set-home-hero":               decodeInto[SetHomeHero],
	"set-studio-hire-hero":        decodeInto[SetStudioHireHero],
	"set-studio-hire-images":      decodeInto[SetStudioHireImages],
	"set-studio-hire-packages":    decodeInto[SetStudioHirePackages],
	"set-studio-hire-addons":      decodeInto[SetStudioHireAddons],
	"set-studio-hire-faqs":        decodeInto[SetStudioHireFAQs],
	"set-editing-hero":            decodeInto[SetEditingHero],
	"set-editing-images":          decodeInto[SetEditingImages],
	"set-editing-packages":        decodeInto[SetEditingPackages],
	"set-editing-addons":          decodeInto[SetEditingAddons],
	"set-live-streaming-hero":     decodeInto[SetLiveStreamingHero],
	"set-live-streaming-packages": decodeInto[SetLiveStreamingPackages],
	"set-membership-hero":         decodeInto[SetMembershipHero],
	"set-membership-tiers":        decodeInto[SetMembershipTiers],
	"set-homepage":                decodeInto[SetHomepage],
	"set-about":                   decodeInto[SetAbout],
}

func decodeInto[T Update](raw []byte) (Update, error) {
	var u T
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, badRequestf("decode %s payload: %v", u.Op(), err)
	}
	return u, nil
}

// DecodeUpdate parses a JSON update envelope of the form
// {"op": "<name>", ...payload}.
func DecodeUpdate(raw []byte) (Update, error) {
	var envelope struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, badRequestf("decode update envelope: %v", err)
	}
	op := strings.TrimSpace(envelope.Op)
	if op == "" {
		return nil, badRequestf("update op is required")
	}
	decode, ok := updateDecoders[op]
	if !ok {
		return nil, badRequestf("unsupported update op %q", op)
	}
	return decode(raw)
}

// apply is the single reducer every typed update flows through. It returns a
// new tree; untouched sections keep the identity they had in the input, so
// readers holding references to sibling sections are unaffected.
func apply(c SiteContent, u Update) (SiteContent, error) {
	switch v := u.(type) {
	case SetCompanyInfo:
		c.CompanyName = v.CompanyName
		c.Tagline = v.Tagline
		c.Description = SanitizeText(v.Description)

	case SetContactInfo:
		c.Email = v.Email
		c.Phone = v.Phone
		c.Address = v.Address

	case SetSocialLinks:
		c.SocialMedia = v.SocialMedia

	case SetHomeHero:
		c.Hero = v.Hero

	case SetStudioHireHero:
		c.StudioHire.HeroTitle = v.Hero.Title
		c.StudioHire.HeroSubtitle = v.Hero.Subtitle
		c.StudioHire.HeroDescription = SanitizeText(v.Hero.Description)
		c.StudioHire.HeroVideo = v.Hero.Video

	case SetStudioHireImages:
		c.StudioHire.AddonImages = cloneStrings(v.AddonImages)

	case SetStudioHirePackages:
		pkgs := cloneRecords(v.Packages)
		if err := checkStudioPackages(pkgs); err != nil {
			return c, err
		}
		c.StudioHire.Packages = pkgs

	case SetStudioHireAddons:
		addons := cloneFlat(v.Addons)
		sanitizeStudioAddons(addons)
		c.StudioHire.Addons = addons

	case SetStudioHireFAQs:
		faqs := cloneFlat(v.FAQs)
		if err := checkFAQs(faqs); err != nil {
			return c, err
		}
		c.StudioHire.FAQs = faqs

	case SetEditingHero:
		c.Editing.HeroTitle = v.Hero.Title
		c.Editing.HeroSubtitle = v.Hero.Subtitle
		c.Editing.HeroDescription = SanitizeText(v.Hero.Description)
		c.Editing.HeroVideo = v.Hero.Video

	case SetEditingImages:
		c.Editing.AddonImages = cloneStrings(v.AddonImages)

	case SetEditingPackages:
		pkgs := cloneRecords(v.Packages)
		if err := checkEditingPackages(pkgs); err != nil {
			return c, err
		}
		c.Editing.Packages = pkgs

	case SetEditingAddons:
		addons := cloneRecords(v.Addons)
		if err := checkEditingAddons(addons); err != nil {
			return c, err
		}
		c.Editing.Addons = addons

	case SetLiveStreamingHero:
		c.LiveStreaming.HeroTitle = v.Hero.Title
		c.LiveStreaming.HeroSubtitle = v.Hero.Subtitle
		c.LiveStreaming.HeroDescription = SanitizeText(v.Hero.Description)
		c.LiveStreaming.HeroVideo = v.Hero.Video

	case SetLiveStreamingPackages:
		pkgs := cloneRecords(v.Packages)
		if err := checkStreamPackages(pkgs); err != nil {
			return c, err
		}
		c.LiveStreaming.Packages = pkgs

	case SetMembershipHero:
		c.Membership.HeroTitle = v.Hero.Title
		c.Membership.HeroSubtitle = v.Hero.Subtitle
		c.Membership.HeroDescription = SanitizeText(v.Hero.Description)
		c.Membership.HeroVideo = v.Hero.Video

	case SetMembershipTiers:
		tiers := cloneRecords(v.Tiers)
		if err := checkMembershipTiers(tiers); err != nil {
			return c, err
		}
		c.Membership.Tiers = tiers

	case SetHomepage:
		hp := v.Homepage
		hp.FeatureImages = cloneStrings(hp.FeatureImages)
		hp.Features = cloneFlat(hp.Features)
		hp.Stats = cloneFlat(hp.Stats)
		sanitizeHomepage(&hp)
		c.Homepage = hp

	case SetAbout:
		a := v.About
		sanitizeAbout(&a)
		c.About = a

	default:
		return c, badRequestf("unsupported update type %T", u)
	}
	return c, nil
}
