// Package content owns the editable site content tree: the typed SiteContent
// structure, its hard-coded defaults, the persisted snapshot format, and the
// Store through which every read and mutation flows.
package content

// PortfolioItem is a single showcase entry. The ID is assigned once at
// creation time and never changes across subsequent edits.
type PortfolioItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

type SocialMedia struct {
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	YouTube   string `json:"youtube"`
	LinkedIn  string `json:"linkedin"`
	TikTok    string `json:"tiktok"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
}

// StudioPackage is a studio-hire pricing card. Price and Duration are
// free-form display strings ("£50", "per hour"); the store performs no
// numeric validation on them.
type StudioPackage struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}

type StudioAddon struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type StudioHire struct {
	HeroTitle       string          `json:"heroTitle"`
	HeroSubtitle    string          `json:"heroSubtitle"`
	HeroDescription string          `json:"heroDescription"`
	HeroVideo       string          `json:"heroVideo"`
	AddonImages     []string        `json:"addonImages"`
	Packages        []StudioPackage `json:"packages"`
	Addons          []StudioAddon   `json:"addons"`
	FAQs            []FAQ           `json:"faqs"`
}

type EditingPackage struct {
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle"`
	Price      string   `json:"price"`
	Unit       string   `json:"unit"`
	Turnaround string   `json:"turnaround"`
	Revisions  string   `json:"revisions"`
	Features   []string `json:"features"`
	Popular    bool     `json:"popular,omitempty"`
}

type EditingAddon struct {
	Title      string   `json:"title"`
	Price      string   `json:"price"`
	Turnaround string   `json:"turnaround"`
	Revisions  string   `json:"revisions"`
	Features   []string `json:"features"`
}

type Editing struct {
	HeroTitle       string           `json:"heroTitle"`
	HeroSubtitle    string           `json:"heroSubtitle"`
	HeroDescription string           `json:"heroDescription"`
	HeroVideo       string           `json:"heroVideo"`
	AddonImages     []string         `json:"addonImages"`
	Packages        []EditingPackage `json:"packages"`
	Addons          []EditingAddon   `json:"addons"`
}

type StreamPackage struct {
	Title    string   `json:"title"`
	Price    string   `json:"price"`
	Duration string   `json:"duration"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular,omitempty"`
}

type LiveStreaming struct {
	HeroTitle       string          `json:"heroTitle"`
	HeroSubtitle    string          `json:"heroSubtitle"`
	HeroDescription string          `json:"heroDescription"`
	HeroVideo       string          `json:"heroVideo"`
	Packages        []StreamPackage `json:"packages"`
}

type MembershipTier struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Period   string   `json:"period"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular,omitempty"`
}

type Membership struct {
	HeroTitle       string           `json:"heroTitle"`
	HeroSubtitle    string           `json:"heroSubtitle"`
	HeroDescription string           `json:"heroDescription"`
	HeroVideo       string           `json:"heroVideo"`
	Tiers           []MembershipTier `json:"tiers"`
}

type HomepageFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Stat struct {
	Number int    `json:"number"`
	Suffix string `json:"suffix"`
	Label  string `json:"label"`
}

type Homepage struct {
	HeroVideo1          string            `json:"heroVideo1"`
	HeroVideo2          string            `json:"heroVideo2"`
	ShowreelVideo       string            `json:"showreelVideo"`
	FeatureImages       []string          `json:"featureImages"`
	FeaturesTitle       string            `json:"featuresTitle"`
	FeaturesSubtitle    string            `json:"featuresSubtitle"`
	Features            []HomepageFeature `json:"features"`
	ShowreelTitle       string            `json:"showreelTitle"`
	ShowreelDescription string            `json:"showreelDescription"`
	StatsTitle          string            `json:"statsTitle"`
	StatsSubtitle       string            `json:"statsSubtitle"`
	Stats               []Stat            `json:"stats"`
	CTATitle            string            `json:"ctaTitle"`
	CTADescription      string            `json:"ctaDescription"`
	CTAButtonText       string            `json:"ctaButtonText"`
}

type About struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
}

// SiteContent is the full editable content tree. Fixed top-level sections
// plus the variable-length portfolio list.
type SiteContent struct {
	CompanyName string `json:"companyName"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`

	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`

	SocialMedia SocialMedia `json:"socialMedia"`
	Hero        Hero        `json:"hero"`

	StudioHire    StudioHire    `json:"studioHire"`
	Editing       Editing       `json:"editing"`
	LiveStreaming LiveStreaming `json:"liveStreaming"`
	Membership    Membership    `json:"membership"`
	Homepage      Homepage      `json:"homepage"`
	About         About         `json:"about"`

	Portfolio []PortfolioItem `json:"portfolio"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (p StudioPackage) clone() StudioPackage   { p.Features = cloneStrings(p.Features); return p }
func (p EditingPackage) clone() EditingPackage { p.Features = cloneStrings(p.Features); return p }
func (a EditingAddon) clone() EditingAddon     { a.Features = cloneStrings(a.Features); return a }
func (p StreamPackage) clone() StreamPackage   { p.Features = cloneStrings(p.Features); return p }
func (t MembershipTier) clone() MembershipTier { t.Features = cloneStrings(t.Features); return t }

func cloneRecords[T interface{ clone() T }](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, rec := range in {
		out[i] = rec.clone()
	}
	return out
}

func cloneFlat[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func (s StudioHire) clone() StudioHire {
	s.AddonImages = cloneStrings(s.AddonImages)
	s.Packages = cloneRecords(s.Packages)
	s.Addons = cloneFlat(s.Addons)
	s.FAQs = cloneFlat(s.FAQs)
	return s
}

func (e Editing) clone() Editing {
	e.AddonImages = cloneStrings(e.AddonImages)
	e.Packages = cloneRecords(e.Packages)
	e.Addons = cloneRecords(e.Addons)
	return e
}

func (l LiveStreaming) clone() LiveStreaming {
	l.Packages = cloneRecords(l.Packages)
	return l
}

func (m Membership) clone() Membership {
	m.Tiers = cloneRecords(m.Tiers)
	return m
}

func (h Homepage) clone() Homepage {
	h.FeatureImages = cloneStrings(h.FeatureImages)
	h.Features = cloneFlat(h.Features)
	h.Stats = cloneFlat(h.Stats)
	return h
}

// Clone returns a deep copy of the tree. Callers may mutate the result
// freely without affecting the store's current content.
func (c SiteContent) Clone() SiteContent {
	c.StudioHire = c.StudioHire.clone()
	c.Editing = c.Editing.clone()
	c.LiveStreaming = c.LiveStreaming.clone()
	c.Membership = c.Membership.clone()
	c.Homepage = c.Homepage.clone()
	c.Portfolio = cloneFlat(c.Portfolio)
	return c
}
