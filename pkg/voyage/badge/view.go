package badge

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

// ErrViewClosed is returned by Refresh once the view has been closed.
var ErrViewClosed = errors.New("badge view closed")

// ErrStaleRefresh is returned when a newer refresh started before this one
// completed. Its result is discarded.
var ErrStaleRefresh = errors.New("stale badge refresh discarded")

// Lister is the part of Reader a View needs.
type Lister interface {
	ListAllBadges(ctx context.Context, session *common.WalletSession) (*Listing, error)
}

// View holds the latest listing for one screen. Results are only applied
// while the view is alive and when no newer refresh has started.
type View struct {
	lister  Lister
	session *common.WalletSession

	mu         sync.Mutex
	alive      bool
	generation uint64
	listing    *Listing
}

func NewView(lister Lister, session *common.WalletSession) *View {
	return &View{
		lister:  lister,
		session: session,
		alive:   true,
		listing: &Listing{},
	}
}

// Refresh fetches a new listing and replaces the current one wholesale.
func (v *View) Refresh(ctx context.Context) (*Listing, error) {
	v.mu.Lock()
	if !v.alive {
		v.mu.Unlock()
		return nil, ErrViewClosed
	}
	v.generation++
	generation := v.generation
	session := v.session
	v.mu.Unlock()

	fresh, err := v.lister.ListAllBadges(ctx, session)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.alive {
		return nil, ErrViewClosed
	}
	if generation != v.generation {
		return nil, ErrStaleRefresh
	}

	v.listing = Reconcile(v.listing, fresh)
	return v.listing, nil
}

// ApplyBurn marks the burned badge as no longer owned ahead of the next
// refresh.
func (v *View) ApplyBurn(mint ed25519.PublicKey) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.alive {
		return
	}
	v.listing = ApplyBurn(v.listing, mint)
}

// SetSession switches the wallet. Ownership is recomputed by the next
// Refresh, and any refresh in flight is invalidated.
func (v *View) SetSession(session *common.WalletSession) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.session = session
	v.generation++
}

func (v *View) Listing() *Listing {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listing
}

// Close marks the view dead. Pending refreshes complete without applying.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alive = false
}
