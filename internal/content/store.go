package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/eastdocs/studioctl/internal/ids"
)

// Snapshot persists the serialized content tree. Load reports ok=false when
// no snapshot has been written yet.
type Snapshot interface {
	Load(ctx context.Context) (raw []byte, ok bool, err error)
	Save(ctx context.Context, raw []byte) error
	Clear(ctx context.Context) error
}

// NotFoundError reports a lookup of an id that does not exist in the tree.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func notFoundf(format string, args ...any) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// Store holds the canonical site content tree. All reads return deep copies
// and all mutations run under the write lock, persist the whole tree, and
// only commit in memory once the snapshot write succeeded.
type Store struct {
	mu      sync.RWMutex
	content SiteContent
	snap    Snapshot
	logger  *slog.Logger
}

// NewStore loads the persisted snapshot (if any), merges it onto the default
// tree and returns a ready store. A malformed snapshot is logged and
// discarded rather than failing startup.
func NewStore(ctx context.Context, snap Snapshot, logger *slog.Logger) (*Store, error) {
	s := &Store{snap: snap, logger: logger}

	raw, ok, err := snap.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content snapshot: %w", err)
	}
	if !ok {
		s.content = Defaults()
		return s, nil
	}
	s.content = decodeSnapshot(raw, logger)
	return s, nil
}

// Get returns a deep copy of the current tree.
func (s *Store) Get() SiteContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

// SectionPatch names the top-level sections that ReplaceSection can swap
// wholesale. Nil fields are left untouched. Portfolio is managed through the
// dedicated item operations and is deliberately absent.
type SectionPatch struct {
	CompanyName *string `json:"companyName"`
	Tagline     *string `json:"tagline"`
	Description *string `json:"description"`

	Email   *string  `json:"email"`
	Phone   *string  `json:"phone"`
	Address *Address `json:"address"`

	SocialMedia *SocialMedia `json:"socialMedia"`
	Hero        *Hero        `json:"hero"`

	StudioHire    *StudioHire    `json:"studioHire"`
	Editing       *Editing       `json:"editing"`
	LiveStreaming *LiveStreaming `json:"liveStreaming"`
	Membership    *Membership    `json:"membership"`
	Homepage      *Homepage      `json:"homepage"`
	About         *About         `json:"about"`
}

func (p SectionPatch) empty() bool {
	return p.CompanyName == nil && p.Tagline == nil && p.Description == nil &&
		p.Email == nil && p.Phone == nil && p.Address == nil &&
		p.SocialMedia == nil && p.Hero == nil &&
		p.StudioHire == nil && p.Editing == nil && p.LiveStreaming == nil &&
		p.Membership == nil && p.Homepage == nil && p.About == nil
}

// Sections lists the names of the sections the patch carries.
func (p SectionPatch) Sections() []string {
	var names []string
	add := func(present bool, name string) {
		if present {
			names = append(names, name)
		}
	}
	add(p.CompanyName != nil, "companyName")
	add(p.Tagline != nil, "tagline")
	add(p.Description != nil, "description")
	add(p.Email != nil, "email")
	add(p.Phone != nil, "phone")
	add(p.Address != nil, "address")
	add(p.SocialMedia != nil, "socialMedia")
	add(p.Hero != nil, "hero")
	add(p.StudioHire != nil, "studioHire")
	add(p.Editing != nil, "editing")
	add(p.LiveStreaming != nil, "liveStreaming")
	add(p.Membership != nil, "membership")
	add(p.Homepage != nil, "homepage")
	add(p.About != nil, "about")
	return names
}

// ReplaceSection swaps the provided sections wholesale and persists the
// resulting tree. Incoming sections pass the same record checks the typed
// updates enforce, so a wholesale replacement cannot install records the
// reducer would reject.
func (s *Store) ReplaceSection(ctx context.Context, patch SectionPatch) error {
	if patch.empty() {
		return badRequestf("patch contains no sections")
	}
	return s.mutate(ctx, func(c SiteContent) (SiteContent, error) {
		override(&c.CompanyName, patch.CompanyName)
		override(&c.Tagline, patch.Tagline)
		if patch.Description != nil {
			c.Description = SanitizeText(*patch.Description)
		}
		override(&c.Email, patch.Email)
		override(&c.Phone, patch.Phone)
		override(&c.Address, patch.Address)
		override(&c.SocialMedia, patch.SocialMedia)
		override(&c.Hero, patch.Hero)
		if patch.StudioHire != nil {
			sec := patch.StudioHire.clone()
			if err := checkStudioHire(&sec); err != nil {
				return c, err
			}
			c.StudioHire = sec
		}
		if patch.Editing != nil {
			sec := patch.Editing.clone()
			if err := checkEditing(&sec); err != nil {
				return c, err
			}
			c.Editing = sec
		}
		if patch.LiveStreaming != nil {
			sec := patch.LiveStreaming.clone()
			if err := checkLiveStreaming(&sec); err != nil {
				return c, err
			}
			c.LiveStreaming = sec
		}
		if patch.Membership != nil {
			sec := patch.Membership.clone()
			if err := checkMembership(&sec); err != nil {
				return c, err
			}
			c.Membership = sec
		}
		if patch.Homepage != nil {
			sec := patch.Homepage.clone()
			sanitizeHomepage(&sec)
			c.Homepage = sec
		}
		if patch.About != nil {
			a := *patch.About
			sanitizeAbout(&a)
			c.About = a
		}
		return c, nil
	})
}

// Apply runs a single typed update command against the tree and persists the
// result.
func (s *Store) Apply(ctx context.Context, u Update) error {
	return s.mutate(ctx, func(c SiteContent) (SiteContent, error) {
		return apply(c, u)
	})
}

// Reset restores the default tree and deletes the persisted snapshot.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.snap.Clear(ctx); err != nil {
		return fmt.Errorf("clear content snapshot: %w", err)
	}
	s.content = Defaults()
	return nil
}

// AddPortfolioItem assigns the item a ULID id and appends it. The assigned
// id is returned and never changes afterwards.
func (s *Store) AddPortfolioItem(ctx context.Context, item PortfolioItem) (PortfolioItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return PortfolioItem{}, badRequestf("portfolio item title must not be empty")
	}
	item.ID = ids.MustNew(time.Now())
	item.Description = SanitizeText(item.Description)
	err := s.mutate(ctx, func(c SiteContent) (SiteContent, error) {
		c.Portfolio = append(cloneFlat(c.Portfolio), item)
		return c, nil
	})
	if err != nil {
		return PortfolioItem{}, err
	}
	return item, nil
}

// UpdatePortfolioItem replaces the item with the given id. The id itself is
// immutable; the one carried inside item is ignored.
func (s *Store) UpdatePortfolioItem(ctx context.Context, id string, item PortfolioItem) (PortfolioItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return PortfolioItem{}, badRequestf("portfolio item title must not be empty")
	}
	item.ID = id
	item.Description = SanitizeText(item.Description)
	err := s.mutate(ctx, func(c SiteContent) (SiteContent, error) {
		items := cloneFlat(c.Portfolio)
		idx := portfolioIndex(items, id)
		if idx < 0 {
			return c, notFoundf("portfolio item %q not found", id)
		}
		items[idx] = item
		c.Portfolio = items
		return c, nil
	})
	if err != nil {
		return PortfolioItem{}, err
	}
	return item, nil
}

// RemovePortfolioItem removes exactly the item with the given id.
func (s *Store) RemovePortfolioItem(ctx context.Context, id string) error {
	return s.mutate(ctx, func(c SiteContent) (SiteContent, error) {
		items := c.Portfolio
		idx := portfolioIndex(items, id)
		if idx < 0 {
			return c, notFoundf("portfolio item %q not found", id)
		}
		next := make([]PortfolioItem, 0, len(items)-1)
		next = append(next, items[:idx]...)
		next = append(next, items[idx+1:]...)
		c.Portfolio = next
		return c, nil
	})
}

func portfolioIndex(items []PortfolioItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// mutate applies fn to a copy of the tree, persists the result, and commits
// it in memory only after the snapshot write succeeded. On persistence
// failure the in-memory tree is unchanged.
func (s *Store) mutate(ctx context.Context, fn func(SiteContent) (SiteContent, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.content)
	if err != nil {
		return err
	}
	raw, err := encodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := s.snap.Save(ctx, raw); err != nil {
		return fmt.Errorf("persist content snapshot: %w", err)
	}
	s.content = next
	return nil
}
