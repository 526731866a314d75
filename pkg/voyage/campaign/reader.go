package campaign

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sort"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/captain-sol/voyage-client/pkg/ipfs"
	"github.com/captain-sol/voyage-client/pkg/metrics"
	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/captainsol"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

const (
	metricsStructName = "voyage.campaign.reader"

	skippedRecordMetricName      = "Campaign_SkippedRecord"
	unresolvedMetadataMetricName = "Campaign_UnresolvedMetadata"
	maxConcurrentMetadataFetches = 8
)

// ErrNotRegistered is returned when a participant has no progress record.
var ErrNotRegistered = errors.New("participant is not registered")

// Campaign is a decoded campaign with its off-chain metadata resolved.
type Campaign struct {
	captainsol.CampaignAccount

	Address  ed25519.PublicKey
	Metadata *Metadata

	// MetadataResolved is false when Metadata is the placeholder.
	MetadataResolved bool
}

type Module struct {
	captainsol.ModuleAccount

	Address ed25519.PublicKey
}

// Reader lists campaign program records.
type Reader struct {
	log     *logrus.Entry
	client  solana.Client
	store   ipfs.Store
	builder *Builder
	program ed25519.PublicKey
}

func NewReader(client solana.Client, store ipfs.Store, programs *common.Programs) *Reader {
	return &Reader{
		log:     logrus.StandardLogger().WithField("type", "voyage/campaign/reader"),
		client:  client,
		store:   store,
		builder: NewBuilder(programs),
		program: programs.Campaign,
	}
}

// ListCampaigns returns every campaign with its metadata. A campaign whose
// metadata cannot be fetched carries the placeholder instead of failing the
// listing.
func (r *Reader) ListCampaigns(ctx context.Context) (campaigns []*Campaign, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ListCampaigns")
	tracer.AddAccount("program", r.program)
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	accounts, err := r.client.GetProgramAccounts(
		r.program,
		solana.CommitmentConfirmed,
		solana.NewMemcmpFilter(0, captainsol.CampaignAccountDiscriminator),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error getting campaign accounts")
	}

	var skipped int
	campaigns = make([]*Campaign, 0, len(accounts))
	for _, account := range accounts {
		var decoded captainsol.CampaignAccount
		if err := decoded.Unmarshal(account.Account.Data); err != nil {
			r.logSkipped(account.PublicKey, err)
			skipped++
			continue
		}

		campaigns = append(campaigns, &Campaign{
			CampaignAccount: decoded,
			Address:         account.PublicKey,
			Metadata:        PlaceholderMetadata(),
		})
	}
	if skipped > 0 {
		metrics.RecordCount(ctx, skippedRecordMetricName, uint64(skipped))
	}

	r.resolveMetadata(ctx, campaigns)

	tracer.AddAttribute("campaigns", len(campaigns))
	tracer.AddAttribute("skipped", skipped)
	return campaigns, nil
}

// ListActiveCampaigns returns the campaigns whose status is Active.
func (r *Reader) ListActiveCampaigns(ctx context.Context) ([]*Campaign, error) {
	campaigns, err := r.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	var active []*Campaign
	for _, campaign := range campaigns {
		if campaign.Status == captainsol.CampaignStatusActive {
			active = append(active, campaign)
		}
	}
	return active, nil
}

// ListLiveCampaigns narrows active campaigns to those inside their time
// window at now.
func (r *Reader) ListLiveCampaigns(ctx context.Context, now time.Time) ([]*Campaign, error) {
	campaigns, err := r.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	var live []*Campaign
	for _, campaign := range campaigns {
		if campaign.IsLive(now.Unix()) {
			live = append(live, campaign)
		}
	}
	return live, nil
}

// ListModules returns the modules registered to campaign, ordered by id.
func (r *Reader) ListModules(ctx context.Context, campaign ed25519.PublicKey) (modules []*Module, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ListModules")
	tracer.AddAccount("campaign", campaign)
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	// The campaign key sits after a variable length string, so only the
	// discriminator can be filtered on the node.
	accounts, err := r.client.GetProgramAccounts(
		r.program,
		solana.CommitmentConfirmed,
		solana.NewMemcmpFilter(0, captainsol.ModuleAccountDiscriminator),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error getting module accounts")
	}

	for _, account := range accounts {
		var decoded captainsol.ModuleAccount
		if err := decoded.Unmarshal(account.Account.Data); err != nil {
			r.logSkipped(account.PublicKey, err)
			continue
		}
		if !bytes.Equal(decoded.Campaign, campaign) {
			continue
		}

		modules = append(modules, &Module{
			ModuleAccount: decoded,
			Address:       account.PublicKey,
		})
	}

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].ModuleId < modules[j].ModuleId
	})
	return modules, nil
}

// GetParticipantProgress returns the participant's progress in campaign, or
// ErrNotRegistered.
func (r *Reader) GetParticipantProgress(ctx context.Context, campaign, participant ed25519.PublicKey) (progress *captainsol.ParticipantProgressAccount, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetParticipantProgress")
	tracer.AddAccount("campaign", campaign)
	tracer.AddAccount("participant", participant)
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	address, err := r.builder.ProgressAddress(campaign, participant)
	if err != nil {
		return nil, err
	}

	info, err := r.client.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrNotRegistered
	} else if err != nil {
		return nil, errors.Wrap(err, "error getting participant progress")
	}

	progress = &captainsol.ParticipantProgressAccount{}
	if err := progress.Unmarshal(info.Data); err != nil {
		return nil, common.NewDecodeError(address, err)
	}
	return progress, nil
}

func (r *Reader) resolveMetadata(ctx context.Context, campaigns []*Campaign) {
	var group errgroup.Group
	group.SetLimit(maxConcurrentMetadataFetches)

	for _, campaign := range campaigns {
		campaign := campaign
		if len(campaign.IpfsHash) == 0 {
			continue
		}

		group.Go(func() error {
			var metadata Metadata
			err := ipfs.DecodeJSON(ctx, r.store, campaign.IpfsHash, &metadata)
			if err != nil {
				r.log.WithError(err).
					WithField("campaign", base58.Encode(campaign.Address)).
					WithField("ipfs_hash", campaign.IpfsHash).
					Warn("failed to fetch campaign metadata")
				metrics.RecordCount(ctx, unresolvedMetadataMetricName, 1)
				return nil
			}
			if metadata.Modules == nil {
				metadata.Modules = []ModuleMetadata{}
			}

			campaign.Metadata = &metadata
			campaign.MetadataResolved = true
			return nil
		})
	}

	// Failures degrade to the placeholder and are never returned.
	_ = group.Wait()
}

func (r *Reader) logSkipped(account ed25519.PublicKey, err error) {
	r.log.WithError(common.NewDecodeError(account, err)).
		WithField("account", base58.Encode(account)).
		Warn("skipping campaign program account that failed to decode")
}
