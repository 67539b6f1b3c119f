package media

import (
	"context"
	"log/slog"

	"github.com/eastdocs/studioctl/internal/content"
)

// BackfillHeroVideos fills empty hero video slots from the stock media API.
// It runs once at startup, after the snapshot load scrubbed placeholder
// URLs. Every lookup failure is logged and skipped; the site works without
// hero videos.
func BackfillHeroVideos(ctx context.Context, store *content.Store, fetcher Fetcher, logger *slog.Logger) {
	tree := store.Get()

	lookup := func(slot, query string) (string, bool) {
		url, err := fetcher.VideoURL(ctx, query)
		if err != nil {
			logger.Warn("hero video backfill lookup failed", "slot", slot, "query", query, "error", err)
			return "", false
		}
		return url, true
	}

	if tree.StudioHire.HeroVideo == "" {
		if url, ok := lookup("studioHire", "podcast recording studio"); ok {
			err := store.Apply(ctx, content.SetStudioHireHero{Hero: content.PageHero{
				Title:       tree.StudioHire.HeroTitle,
				Subtitle:    tree.StudioHire.HeroSubtitle,
				Description: tree.StudioHire.HeroDescription,
				Video:       url,
			}})
			logApplyResult(logger, "studioHire", err)
		}
	}

	if tree.Editing.HeroVideo == "" {
		if url, ok := lookup("editing", "video editing timeline"); ok {
			err := store.Apply(ctx, content.SetEditingHero{Hero: content.PageHero{
				Title:       tree.Editing.HeroTitle,
				Subtitle:    tree.Editing.HeroSubtitle,
				Description: tree.Editing.HeroDescription,
				Video:       url,
			}})
			logApplyResult(logger, "editing", err)
		}
	}

	if tree.LiveStreaming.HeroVideo == "" {
		if url, ok := lookup("liveStreaming", "live streaming broadcast"); ok {
			err := store.Apply(ctx, content.SetLiveStreamingHero{Hero: content.PageHero{
				Title:       tree.LiveStreaming.HeroTitle,
				Subtitle:    tree.LiveStreaming.HeroSubtitle,
				Description: tree.LiveStreaming.HeroDescription,
				Video:       url,
			}})
			logApplyResult(logger, "liveStreaming", err)
		}
	}

	if tree.Membership.HeroVideo == "" {
		if url, ok := lookup("membership", "creative studio community"); ok {
			err := store.Apply(ctx, content.SetMembershipHero{Hero: content.PageHero{
				Title:       tree.Membership.HeroTitle,
				Subtitle:    tree.Membership.HeroSubtitle,
				Description: tree.Membership.HeroDescription,
				Video:       url,
			}})
			logApplyResult(logger, "membership", err)
		}
	}

	hp := tree.Homepage
	changed := false
	if hp.HeroVideo1 == "" {
		if url, ok := lookup("homepage.heroVideo1", "film production behind the scenes"); ok {
			hp.HeroVideo1 = url
			changed = true
		}
	}
	if hp.HeroVideo2 == "" {
		if url, ok := lookup("homepage.heroVideo2", "camera operator filming"); ok {
			hp.HeroVideo2 = url
			changed = true
		}
	}
	if hp.ShowreelVideo == "" {
		if url, ok := lookup("homepage.showreel", "cinematic showreel"); ok {
			hp.ShowreelVideo = url
			changed = true
		}
	}
	if changed {
		logApplyResult(logger, "homepage", store.Apply(ctx, content.SetHomepage{Homepage: hp}))
	}
}

func logApplyResult(logger *slog.Logger, slot string, err error) {
	if err != nil {
		logger.Warn("hero video backfill apply failed", "slot", slot, "error", err)
		return
	}
	logger.Info("hero video backfilled", "slot", slot)
}
