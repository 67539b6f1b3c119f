package content

import (
	"encoding/json"
	"testing"
)

func TestDecodeSnapshotMergesOntoDefaults(t *testing.T) {
	raw := []byte(`{
		"schemaVersion": 1,
		"content": {
			"companyName": "Custom Studio",
			"studioHire": {"heroTitle": "Custom hire title"},
			"homepage": {"ctaTitle": "Book now"}
		}
	}`)

	got := decodeSnapshot(raw, testLogger())
	defaults := Defaults()

	if got.CompanyName != "Custom Studio" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
	if got.StudioHire.HeroTitle != "Custom hire title" {
		t.Errorf("StudioHire.HeroTitle = %q", got.StudioHire.HeroTitle)
	}
	// Fields absent from the snapshot keep their defaults, including ones
	// inside partially-present sections.
	if got.StudioHire.HeroSubtitle != defaults.StudioHire.HeroSubtitle {
		t.Errorf("StudioHire.HeroSubtitle = %q, want default", got.StudioHire.HeroSubtitle)
	}
	if len(got.StudioHire.Packages) != len(defaults.StudioHire.Packages) {
		t.Errorf("StudioHire.Packages length = %d, want default %d",
			len(got.StudioHire.Packages), len(defaults.StudioHire.Packages))
	}
	if got.Homepage.CTATitle != "Book now" {
		t.Errorf("Homepage.CTATitle = %q", got.Homepage.CTATitle)
	}
	if got.Homepage.FeaturesTitle != defaults.Homepage.FeaturesTitle {
		t.Errorf("Homepage.FeaturesTitle = %q, want default", got.Homepage.FeaturesTitle)
	}
	if got.Editing.HeroTitle != defaults.Editing.HeroTitle {
		t.Errorf("untouched Editing section changed: %q", got.Editing.HeroTitle)
	}
}

func TestDecodeSnapshotMalformedFallsBackToDefaults(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"not json", []byte("{not json")},
		{"future schema", []byte(`{"schemaVersion": 99, "content": {"companyName": "x"}}`)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeSnapshot(tc.raw, testLogger())
			if got.CompanyName != Defaults().CompanyName {
				t.Errorf("CompanyName = %q, want default", got.CompanyName)
			}
		})
	}
}

func TestDecodeSnapshotAcceptsLegacyBareTree(t *testing.T) {
	// Snapshots written before the envelope was introduced are the bare tree.
	raw := []byte(`{"companyName": "Legacy Studio"}`)

	got := decodeSnapshot(raw, testLogger())
	if got.CompanyName != "Legacy Studio" {
		t.Errorf("CompanyName = %q, want %q", got.CompanyName, "Legacy Studio")
	}
	if got.Email != Defaults().Email {
		t.Errorf("Email = %q, want default", got.Email)
	}
}

func TestDecodeSnapshotScrubsPlaceholderVideos(t *testing.T) {
	raw := []byte(`{
		"schemaVersion": 1,
		"content": {
			"studioHire": {"heroVideo": "https://placehold.co/1920x1080"},
			"homepage": {
				"heroVideo1": "https://placehold.co/800x600",
				"showreelVideo": "https://cdn.example.com/showreel.mp4"
			}
		}
	}`)

	got := decodeSnapshot(raw, testLogger())
	if got.StudioHire.HeroVideo != "" {
		t.Errorf("StudioHire.HeroVideo = %q, want scrubbed", got.StudioHire.HeroVideo)
	}
	if got.Homepage.HeroVideo1 != "" {
		t.Errorf("Homepage.HeroVideo1 = %q, want scrubbed", got.Homepage.HeroVideo1)
	}
	if got.Homepage.ShowreelVideo != "https://cdn.example.com/showreel.mp4" {
		t.Errorf("real video URL must survive, got %q", got.Homepage.ShowreelVideo)
	}
}

func TestDecodeSnapshotRepairsInvalidRecords(t *testing.T) {
	raw := []byte(`{
		"schemaVersion": 1,
		"content": {
			"studioHire": {
				"packages": [
					{"name": "No Features", "price": "£10", "features": []},
					{"name": "Dry Hire", "price": "£40",
					 "description": "<script>alert(1)</script>Room only",
					 "features": ["Room only"]}
				],
				"faqs": [{"question": "", "answer": "orphaned"}]
			},
			"membership": {
				"tiers": [{"name": "Empty Tier", "price": "£0", "features": []}]
			}
		}
	}`)

	got := decodeSnapshot(raw, testLogger())

	if len(got.StudioHire.Packages) != 1 {
		t.Fatalf("StudioHire.Packages length = %d, want featureless record dropped", len(got.StudioHire.Packages))
	}
	if got.StudioHire.Packages[0].Name != "Dry Hire" {
		t.Errorf("surviving package = %q, want %q", got.StudioHire.Packages[0].Name, "Dry Hire")
	}
	if got.StudioHire.Packages[0].Description != "Room only" {
		t.Errorf("Description = %q, want sanitized %q", got.StudioHire.Packages[0].Description, "Room only")
	}
	if len(got.StudioHire.FAQs) != 0 {
		t.Errorf("FAQs = %+v, want question-less entry dropped", got.StudioHire.FAQs)
	}
	if len(got.Membership.Tiers) != 0 {
		t.Errorf("Membership.Tiers = %+v, want featureless tier dropped", got.Membership.Tiers)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := Defaults()
	original.CompanyName = "Round Trip Studio"
	original.Portfolio = []PortfolioItem{{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Title: "Pilot", VideoURL: "https://example.com/v"}}

	raw, err := encodeSnapshot(original)
	if err != nil {
		t.Fatalf("encodeSnapshot: %v", err)
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", envelope.SchemaVersion, SchemaVersion)
	}

	got := decodeSnapshot(raw, testLogger())
	if got.CompanyName != original.CompanyName {
		t.Errorf("CompanyName = %q, want %q", got.CompanyName, original.CompanyName)
	}
	if len(got.Portfolio) != 1 || got.Portfolio[0].ID != original.Portfolio[0].ID {
		t.Errorf("Portfolio = %+v, want %+v", got.Portfolio, original.Portfolio)
	}
}
