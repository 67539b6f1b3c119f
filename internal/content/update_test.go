package content

import (
	"errors"
	"testing"
)

func TestDecodeUpdate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantOp  string
		wantErr bool
	}{
		{
			name:   "company info",
			raw:    `{"op":"set-company-info","companyName":"East Docs","tagline":"t","description":"d"}`,
			wantOp: "set-company-info",
		},
		{
			name:   "studio hire packages",
			raw:    `{"op":"set-studio-hire-packages","packages":[{"name":"Half Day","price":"£200","duration":"4 hours","features":["Engineer included"]}]}`,
			wantOp: "set-studio-hire-packages",
		},
		{
			name:   "membership tiers",
			raw:    `{"op":"set-membership-tiers","tiers":[{"name":"Creator","price":"£99","period":"per month","features":["8 hours studio time"]}]}`,
			wantOp: "set-membership-tiers",
		},
		{name: "missing op", raw: `{"packages":[]}`, wantErr: true},
		{name: "unknown op", raw: `{"op":"set-nonsense"}`, wantErr: true},
		{name: "malformed json", raw: `{"op":`, wantErr: true},
		{name: "payload type mismatch", raw: `{"op":"set-studio-hire-packages","packages":"nope"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := DecodeUpdate([]byte(tc.raw))
			if tc.wantErr {
				var badReq *BadRequestError
				if !errors.As(err, &badReq) {
					t.Fatalf("error = %v, want BadRequestError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeUpdate: %v", err)
			}
			if u.Op() != tc.wantOp {
				t.Errorf("Op() = %q, want %q", u.Op(), tc.wantOp)
			}
		})
	}
}

func TestApplyValidatesCollections(t *testing.T) {
	tests := []struct {
		name string
		u    Update
	}{
		{
			name: "studio package without features",
			u:    SetStudioHirePackages{Packages: []StudioPackage{{Name: "Bare", Price: "£10"}}},
		},
		{
			name: "editing package without features",
			u:    SetEditingPackages{Packages: []EditingPackage{{Title: "Bare"}}},
		},
		{
			name: "stream package without features",
			u:    SetLiveStreamingPackages{Packages: []StreamPackage{{Title: "Bare"}}},
		},
		{
			name: "tier without features",
			u:    SetMembershipTiers{Tiers: []MembershipTier{{Name: "Bare"}}},
		},
		{
			name: "faq without answer",
			u:    SetStudioHireFAQs{FAQs: []FAQ{{Question: "Why?", Answer: "  "}}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := apply(Defaults(), tc.u)
			var badReq *BadRequestError
			if !errors.As(err, &badReq) {
				t.Fatalf("error = %v, want BadRequestError", err)
			}
		})
	}
}

func TestApplyFailedUpdateLeavesTreeUsable(t *testing.T) {
	before := Defaults()
	_, err := apply(before, SetStudioHirePackages{Packages: []StudioPackage{{Name: "Bare"}}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(before.StudioHire.Packages) != len(Defaults().StudioHire.Packages) {
		t.Error("failed update mutated the input tree")
	}
}

func TestApplySanitizesRichText(t *testing.T) {
	after, err := apply(Defaults(), SetAbout{About: About{
		Title:       "About us",
		Description: `<p>We make <script>alert("x")</script><strong>films</strong></p>`,
		Mission:     `<span onclick="steal()">Tell stories</span>`,
		Vision:      "plain text",
	}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := after.About.Description; got != "<p>We make <strong>films</strong></p>" {
		t.Errorf("Description = %q", got)
	}
	if got := after.About.Mission; got != "<span>Tell stories</span>" {
		t.Errorf("Mission = %q", got)
	}
	if got := after.About.Vision; got != "plain text" {
		t.Errorf("Vision = %q", got)
	}
}

func TestApplyPageHeroUpdates(t *testing.T) {
	hero := PageHero{Title: "New title", Subtitle: "New subtitle", Description: "New description", Video: "https://cdn.example.com/hero.mp4"}

	after, err := apply(Defaults(), SetEditingHero{Hero: hero})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if after.Editing.HeroTitle != hero.Title ||
		after.Editing.HeroSubtitle != hero.Subtitle ||
		after.Editing.HeroDescription != hero.Description ||
		after.Editing.HeroVideo != hero.Video {
		t.Errorf("editing hero = %+v", after.Editing)
	}
	if after.StudioHire.HeroTitle != Defaults().StudioHire.HeroTitle {
		t.Error("editing hero update touched studio hire hero")
	}
}
