package badge

import (
	"bytes"
	"crypto/ed25519"
)

type Filter uint8

const (
	FilterAll Filter = iota
	FilterLive
	FilterPaused
)

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterLive:
		return "live"
	case FilterPaused:
		return "paused"
	}
	return "unknown"
}

// Listing is the result of one badge scan. It is replaced wholesale on
// refresh and never mutated in place.
type Listing struct {
	Badges []*Badge

	// Skipped counts accounts that failed to decode.
	Skipped int
}

// WithOwnedMints returns a copy with only the ownership flags recomputed.
func (l *Listing) WithOwnedMints(owned MintSet) *Listing {
	updated := &Listing{
		Badges:  make([]*Badge, len(l.Badges)),
		Skipped: l.Skipped,
	}
	for i, badge := range l.Badges {
		cloned := badge.Clone()
		cloned.IsOwned = owned.Contains(cloned.Mint)
		updated.Badges[i] = cloned
	}
	return updated
}

func (l *Listing) Owned() []*Badge {
	return l.where(func(b *Badge) bool { return b.IsOwned })
}

func (l *Listing) CreatedBy(creator ed25519.PublicKey) []*Badge {
	return l.where(func(b *Badge) bool { return b.IsCreatedBy(creator) })
}

func (l *Listing) Filter(filter Filter) []*Badge {
	switch filter {
	case FilterLive:
		return l.where(func(b *Badge) bool { return b.IsActive })
	case FilterPaused:
		return l.where(func(b *Badge) bool { return !b.IsActive })
	}
	return l.where(func(*Badge) bool { return true })
}

// Find returns the badge at address, or nil.
func (l *Listing) Find(address ed25519.PublicKey) *Badge {
	for _, badge := range l.Badges {
		if bytes.Equal(badge.Address, address) {
			return badge
		}
	}
	return nil
}

func (l *Listing) where(keep func(*Badge) bool) []*Badge {
	var res []*Badge
	for _, badge := range l.Badges {
		if keep(badge) {
			res = append(res, badge)
		}
	}
	return res
}

// ApplyBurn optimistically clears ownership of the badge for mint after a
// burn is submitted. A burn destroys the holder's token, not the badge, so the
// badge stays listed and purchasable. The input is not modified.
func ApplyBurn(state *Listing, mint ed25519.PublicKey) *Listing {
	if state == nil {
		return nil
	}

	updated := &Listing{
		Badges:  make([]*Badge, len(state.Badges)),
		Skipped: state.Skipped,
	}
	for i, badge := range state.Badges {
		if badge.IsOwned && bytes.Equal(badge.Mint, mint) {
			cloned := badge.Clone()
			cloned.IsOwned = false
			badge = cloned
		}
		updated.Badges[i] = badge
	}
	return updated
}

// Reconcile resolves an optimistic listing against a fresh fetch. The fresh
// listing always wins.
func Reconcile(state, fresh *Listing) *Listing {
	if fresh == nil {
		return state
	}
	return fresh
}
