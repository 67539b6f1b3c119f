package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// SchemaVersion is written into every persisted snapshot envelope. Version 0
// (absent field) identifies pre-envelope snapshots that stored the bare tree;
// those still decode. Snapshots from a newer schema are ignored in favour of
// defaults rather than half-merged.
const SchemaVersion = 1

// placeholderHost marks media URLs that were seeded as placeholder images
// and must never survive a reload as video sources.
const placeholderHost = "placehold.co"

type snapshotEnvelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Content       json.RawMessage `json:"content"`
}

func encodeSnapshot(c SiteContent) ([]byte, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal content tree: %w", err)
	}
	raw, err := json.Marshal(snapshotEnvelope{SchemaVersion: SchemaVersion, Content: payload})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot envelope: %w", err)
	}
	return raw, nil
}

// decodeSnapshot parses a persisted snapshot and merges it onto the default
// tree. Any parse failure is non-fatal: the defaults are returned and the
// problem is logged. The merge is intentionally hand-enumerated per known
// section so that fields added to the defaults after the snapshot was
// written survive the reload.
func decodeSnapshot(raw []byte, logger *slog.Logger) SiteContent {
	defaults := Defaults()
	if len(raw) == 0 {
		return defaults
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logger.Warn("persisted content snapshot is malformed, using defaults", "error", err)
		return defaults
	}
	if envelope.SchemaVersion > SchemaVersion {
		logger.Warn("persisted content snapshot has unknown schema version, using defaults",
			"snapshot_version", envelope.SchemaVersion,
			"supported_version", SchemaVersion,
		)
		return defaults
	}

	payload := []byte(envelope.Content)
	if len(payload) == 0 {
		// Pre-envelope snapshot: the blob is the bare tree.
		payload = raw
	}

	var partial partialContent
	if err := json.Unmarshal(payload, &partial); err != nil {
		logger.Warn("persisted content tree is malformed, using defaults", "error", err)
		return defaults
	}

	partial.scrubMediaURLs()
	return repairLoadedTree(mergeOntoDefaults(defaults, partial), logger)
}

// repairLoadedTree enforces the collection record checks on a freshly merged
// snapshot. The write paths reject a violating record; here one is dropped
// with a warning instead, so a hand-edited or pre-validation snapshot cannot
// keep the daemon from starting or put an unchecked record on the read path.
// Free text passes through the same sanitizer the write paths use.
func repairLoadedTree(c SiteContent, logger *slog.Logger) SiteContent {
	c.Description = SanitizeText(c.Description)

	c.StudioHire.HeroDescription = SanitizeText(c.StudioHire.HeroDescription)
	c.StudioHire.Packages = keepValid(logger, "studioHire.packages", c.StudioHire.Packages, validStudioPackage)
	sanitizeStudioAddons(c.StudioHire.Addons)
	c.StudioHire.FAQs = keepValid(logger, "studioHire.faqs", c.StudioHire.FAQs, validFAQ)

	c.Editing.HeroDescription = SanitizeText(c.Editing.HeroDescription)
	c.Editing.Packages = keepValid(logger, "editing.packages", c.Editing.Packages, validEditingPackage)
	c.Editing.Addons = keepValid(logger, "editing.addons", c.Editing.Addons, validEditingAddon)

	c.LiveStreaming.HeroDescription = SanitizeText(c.LiveStreaming.HeroDescription)
	c.LiveStreaming.Packages = keepValid(logger, "liveStreaming.packages", c.LiveStreaming.Packages, validStreamPackage)

	c.Membership.HeroDescription = SanitizeText(c.Membership.HeroDescription)
	c.Membership.Tiers = keepValid(logger, "membership.tiers", c.Membership.Tiers, validMembershipTier)

	sanitizeHomepage(&c.Homepage)
	sanitizeAbout(&c.About)

	for i := range c.Portfolio {
		c.Portfolio[i].Description = SanitizeText(c.Portfolio[i].Description)
	}
	return c
}

func keepValid[T any](logger *slog.Logger, collection string, in []T, valid func(*T) bool) []T {
	out := in[:0]
	dropped := 0
	for i := range in {
		if valid(&in[i]) {
			out = append(out, in[i])
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		logger.Warn("dropped invalid records from persisted content snapshot",
			"collection", collection,
			"dropped", dropped,
		)
	}
	return out
}

// Pointer-typed mirror of SiteContent used to distinguish "absent from
// snapshot" from zero values during the merge.
type partialContent struct {
	CompanyName *string `json:"companyName"`
	Tagline     *string `json:"tagline"`
	Description *string `json:"description"`

	Email   *string         `json:"email"`
	Phone   *string         `json:"phone"`
	Address *partialAddress `json:"address"`

	SocialMedia *partialSocialMedia `json:"socialMedia"`
	Hero        *partialHero        `json:"hero"`

	StudioHire    *partialStudioHire    `json:"studioHire"`
	Editing       *partialEditing       `json:"editing"`
	LiveStreaming *partialLiveStreaming `json:"liveStreaming"`
	Membership    *partialMembership    `json:"membership"`
	Homepage      *partialHomepage      `json:"homepage"`
	About         *partialAbout         `json:"about"`

	Portfolio *[]PortfolioItem `json:"portfolio"`
}

type partialAddress struct {
	Line1    *string `json:"line1"`
	Line2    *string `json:"line2"`
	City     *string `json:"city"`
	Postcode *string `json:"postcode"`
}

type partialSocialMedia struct {
	Instagram *string `json:"instagram"`
	Twitter   *string `json:"twitter"`
	YouTube   *string `json:"youtube"`
	LinkedIn  *string `json:"linkedin"`
	TikTok    *string `json:"tiktok"`
}

type partialHero struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	CTAText  *string `json:"ctaText"`
}

type partialStudioHire struct {
	HeroTitle       *string          `json:"heroTitle"`
	HeroSubtitle    *string          `json:"heroSubtitle"`
	HeroDescription *string          `json:"heroDescription"`
	HeroVideo       *string          `json:"heroVideo"`
	AddonImages     *[]string        `json:"addonImages"`
	Packages        *[]StudioPackage `json:"packages"`
	Addons          *[]StudioAddon   `json:"addons"`
	FAQs            *[]FAQ           `json:"faqs"`
}

type partialEditing struct {
	HeroTitle       *string           `json:"heroTitle"`
	HeroSubtitle    *string           `json:"heroSubtitle"`
	HeroDescription *string           `json:"heroDescription"`
	HeroVideo       *string           `json:"heroVideo"`
	AddonImages     *[]string         `json:"addonImages"`
	Packages        *[]EditingPackage `json:"packages"`
	Addons          *[]EditingAddon   `json:"addons"`
}

type partialLiveStreaming struct {
	HeroTitle       *string          `json:"heroTitle"`
	HeroSubtitle    *string          `json:"heroSubtitle"`
	HeroDescription *string          `json:"heroDescription"`
	HeroVideo       *string          `json:"heroVideo"`
	Packages        *[]StreamPackage `json:"packages"`
}

type partialMembership struct {
	HeroTitle       *string           `json:"heroTitle"`
	HeroSubtitle    *string           `json:"heroSubtitle"`
	HeroDescription *string           `json:"heroDescription"`
	HeroVideo       *string           `json:"heroVideo"`
	Tiers           *[]MembershipTier `json:"tiers"`
}

type partialHomepage struct {
	HeroVideo1          *string            `json:"heroVideo1"`
	HeroVideo2          *string            `json:"heroVideo2"`
	ShowreelVideo       *string            `json:"showreelVideo"`
	FeatureImages       *[]string          `json:"featureImages"`
	FeaturesTitle       *string            `json:"featuresTitle"`
	FeaturesSubtitle    *string            `json:"featuresSubtitle"`
	Features            *[]HomepageFeature `json:"features"`
	ShowreelTitle       *string            `json:"showreelTitle"`
	ShowreelDescription *string            `json:"showreelDescription"`
	StatsTitle          *string            `json:"statsTitle"`
	StatsSubtitle       *string            `json:"statsSubtitle"`
	Stats               *[]Stat            `json:"stats"`
	CTATitle            *string            `json:"ctaTitle"`
	CTADescription      *string            `json:"ctaDescription"`
	CTAButtonText       *string            `json:"ctaButtonText"`
}

type partialAbout struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Mission     *string `json:"mission"`
	Vision      *string `json:"vision"`
}

// scrubMediaURLs clears video URL fields that still point at the placeholder
// image host. Image lists are left alone: placeholders there are replaced by
// the media backfill, not at load time.
func (p *partialContent) scrubMediaURLs() {
	scrub := func(url *string) {
		if url != nil && strings.Contains(*url, placeholderHost) {
			*url = ""
		}
	}
	if p.StudioHire != nil {
		scrub(p.StudioHire.HeroVideo)
	}
	if p.Editing != nil {
		scrub(p.Editing.HeroVideo)
	}
	if p.LiveStreaming != nil {
		scrub(p.LiveStreaming.HeroVideo)
	}
	if p.Membership != nil {
		scrub(p.Membership.HeroVideo)
	}
	if p.Homepage != nil {
		scrub(p.Homepage.HeroVideo1)
		scrub(p.Homepage.HeroVideo2)
		scrub(p.Homepage.ShowreelVideo)
	}
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func mergeOntoDefaults(out SiteContent, p partialContent) SiteContent {
	override(&out.CompanyName, p.CompanyName)
	override(&out.Tagline, p.Tagline)
	override(&out.Description, p.Description)
	override(&out.Email, p.Email)
	override(&out.Phone, p.Phone)

	if a := p.Address; a != nil {
		override(&out.Address.Line1, a.Line1)
		override(&out.Address.Line2, a.Line2)
		override(&out.Address.City, a.City)
		override(&out.Address.Postcode, a.Postcode)
	}
	if s := p.SocialMedia; s != nil {
		override(&out.SocialMedia.Instagram, s.Instagram)
		override(&out.SocialMedia.Twitter, s.Twitter)
		override(&out.SocialMedia.YouTube, s.YouTube)
		override(&out.SocialMedia.LinkedIn, s.LinkedIn)
		override(&out.SocialMedia.TikTok, s.TikTok)
	}
	if h := p.Hero; h != nil {
		override(&out.Hero.Title, h.Title)
		override(&out.Hero.Subtitle, h.Subtitle)
		override(&out.Hero.CTAText, h.CTAText)
	}

	if sh := p.StudioHire; sh != nil {
		override(&out.StudioHire.HeroTitle, sh.HeroTitle)
		override(&out.StudioHire.HeroSubtitle, sh.HeroSubtitle)
		override(&out.StudioHire.HeroDescription, sh.HeroDescription)
		override(&out.StudioHire.HeroVideo, sh.HeroVideo)
		override(&out.StudioHire.AddonImages, sh.AddonImages)
		override(&out.StudioHire.Packages, sh.Packages)
		override(&out.StudioHire.Addons, sh.Addons)
		override(&out.StudioHire.FAQs, sh.FAQs)
	}
	if e := p.Editing; e != nil {
		override(&out.Editing.HeroTitle, e.HeroTitle)
		override(&out.Editing.HeroSubtitle, e.HeroSubtitle)
		override(&out.Editing.HeroDescription, e.HeroDescription)
		override(&out.Editing.HeroVideo, e.HeroVideo)
		override(&out.Editing.AddonImages, e.AddonImages)
		override(&out.Editing.Packages, e.Packages)
		override(&out.Editing.Addons, e.Addons)
	}
	if ls := p.LiveStreaming; ls != nil {
		override(&out.LiveStreaming.HeroTitle, ls.HeroTitle)
		override(&out.LiveStreaming.HeroSubtitle, ls.HeroSubtitle)
		override(&out.LiveStreaming.HeroDescription, ls.HeroDescription)
		override(&out.LiveStreaming.HeroVideo, ls.HeroVideo)
		override(&out.LiveStreaming.Packages, ls.Packages)
	}
	if m := p.Membership; m != nil {
		override(&out.Membership.HeroTitle, m.HeroTitle)
		override(&out.Membership.HeroSubtitle, m.HeroSubtitle)
		override(&out.Membership.HeroDescription, m.HeroDescription)
		override(&out.Membership.HeroVideo, m.HeroVideo)
		override(&out.Membership.Tiers, m.Tiers)
	}
	if hp := p.Homepage; hp != nil {
		override(&out.Homepage.HeroVideo1, hp.HeroVideo1)
		override(&out.Homepage.HeroVideo2, hp.HeroVideo2)
		override(&out.Homepage.ShowreelVideo, hp.ShowreelVideo)
		override(&out.Homepage.FeatureImages, hp.FeatureImages)
		override(&out.Homepage.FeaturesTitle, hp.FeaturesTitle)
		override(&out.Homepage.FeaturesSubtitle, hp.FeaturesSubtitle)
		override(&out.Homepage.Features, hp.Features)
		override(&out.Homepage.ShowreelTitle, hp.ShowreelTitle)
		override(&out.Homepage.ShowreelDescription, hp.ShowreelDescription)
		override(&out.Homepage.StatsTitle, hp.StatsTitle)
		override(&out.Homepage.StatsSubtitle, hp.StatsSubtitle)
		override(&out.Homepage.Stats, hp.Stats)
		override(&out.Homepage.CTATitle, hp.CTATitle)
		override(&out.Homepage.CTADescription, hp.CTADescription)
		override(&out.Homepage.CTAButtonText, hp.CTAButtonText)
	}
	if a := p.About; a != nil {
		override(&out.About.Title, a.Title)
		override(&out.About.Description, a.Description)
		override(&out.About.Mission, a.Mission)
		override(&out.About.Vision, a.Vision)
	}

	override(&out.Portfolio, p.Portfolio)
	return out
}
