package badge

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/metrics"
	"github.com/captain-sol/voyage-client/pkg/solana"
	badgeprogram "github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/solana/token"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

const (
	metricsStructName = "voyage.badge.reader"

	skippedRecordMetricName = "Badge_SkippedRecord"
)

// Reader lists badge records from the chain.
type Reader struct {
	log     *logrus.Entry
	client  solana.Client
	program ed25519.PublicKey
}

func NewReader(client solana.Client, programs *common.Programs) *Reader {
	return &Reader{
		log:     logrus.StandardLogger().WithField("type", "voyage/badge/reader"),
		client:  client,
		program: programs.Badge,
	}
}

// ListAllBadges scans every account owned by the badge program. Ownership
// flags are computed when the session has a wallet address. Records that
// fail to decode are logged and counted, never returned as errors.
func (r *Reader) ListAllBadges(ctx context.Context, session *common.WalletSession) (listing *Listing, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ListAllBadges")
	tracer.AddAccount("program", r.program)
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	accounts, err := r.client.GetProgramAccounts(r.program, solana.CommitmentConfirmed)
	if err != nil {
		return nil, errors.Wrap(err, "error getting badge program accounts")
	}

	owned := NewMintSet()
	if session.IsConnected() {
		owned, err = r.OwnedMints(ctx, session.Address)
		if err != nil {
			return nil, err
		}
	}

	listing = &Listing{
		Badges: make([]*Badge, 0, len(accounts)),
	}
	for _, account := range accounts {
		decoded, err := badgeprogram.DecodeBadgeAccount(account.Account.Data)
		if err != nil {
			r.log.WithError(common.NewDecodeError(account.PublicKey, err)).
				WithField("account", base58.Encode(account.PublicKey)).
				Warn("skipping badge account that failed to decode")
			listing.Skipped++
			continue
		}

		listing.Badges = append(listing.Badges, &Badge{
			BadgeAccount: *decoded,
			Address:      account.PublicKey,
			IsOwned:      owned.Contains(decoded.Mint),
		})
	}

	if listing.Skipped > 0 {
		metrics.RecordCount(ctx, skippedRecordMetricName, uint64(listing.Skipped))
	}
	tracer.AddAttribute("badges", len(listing.Badges))
	tracer.AddAttribute("skipped", listing.Skipped)

	return listing, nil
}

// OwnedMints returns the Token-2022 mints owner holds as NFTs: zero decimals
// and a balance of at least one.
func (r *Reader) OwnedMints(ctx context.Context, owner ed25519.PublicKey) (owned MintSet, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "OwnedMints")
	tracer.AddAccount("owner", owner)
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	holdings, err := r.client.GetTokenAccountsByOwner(owner, token.Token2022ProgramKey)
	if err != nil {
		return nil, errors.Wrap(err, "error getting owned token accounts")
	}

	owned = NewMintSet()
	for _, holding := range holdings {
		if holding.IsNonFungible() {
			owned.Add(holding.Mint)
		}
	}
	return owned, nil
}
