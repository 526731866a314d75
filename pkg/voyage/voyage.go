package voyage

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/ipfs"
	"github.com/captain-sol/voyage-client/pkg/osutil"
	"github.com/captain-sol/voyage-client/pkg/rate"
	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/voyage/badge"
	"github.com/captain-sol/voyage-client/pkg/voyage/campaign"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
	"github.com/captain-sol/voyage-client/pkg/voyage/transaction"
)

// The metadata cache never takes more than this share of available memory.
const metadataCacheMemoryDivisor = 32

// Client wires the badge and campaign components to one RPC node and one
// metadata store.
type Client struct {
	Programs *common.Programs

	Solana   solana.Client
	Metadata ipfs.Store

	BadgeBuilder *badge.Builder
	BadgeReader  *badge.Reader

	CampaignBuilder   *campaign.Builder
	CampaignReader    *campaign.Reader
	CampaignPublisher *campaign.Publisher

	Assembler *transaction.Assembler
}

// NewClient builds a Client from configuration.
func NewClient(ctx context.Context, configProvider ConfigProvider) (*Client, error) {
	conf := configProvider()

	programs, err := conf.programs(ctx)
	if err != nil {
		return nil, err
	}
	if err := conf.validateEndpoints(ctx); err != nil {
		return nil, err
	}
	unitLimit, unitPrice, err := conf.computeBudget(ctx)
	if err != nil {
		return nil, err
	}

	var solanaClient solana.Client = solana.New(conf.rpcEndpointUrl(ctx))
	if perSecond := conf.rpcRateLimit.Get(ctx); perSecond > 0 {
		solanaClient = solana.NewLimitedClient(solanaClient, rate.NewLocalRateLimiter(float64(perSecond), int(perSecond)))
	}

	ipfsClient := ipfs.NewClient(conf.ipfsServerUrl.Get(ctx), conf.ipfsApiKey.Get(ctx), http.DefaultClient)

	cacheBudget := osutil.CapToMemoryShare(conf.metadataCacheBudget.Get(ctx), metadataCacheMemoryDivisor)
	cached := ipfs.NewCachedStore(ipfsClient, int(cacheBudget))
	cached.SetVerbose(conf.metadataCacheVerbose.Get(ctx))

	logrus.StandardLogger().WithFields(logrus.Fields{
		"type":         "voyage/client",
		"rpc_endpoint": conf.rpcEndpointUrl(ctx),
		"ipfs_server":  conf.ipfsServerUrl.Get(ctx),
		"rpc_limit":    conf.rpcRateLimit.Get(ctx),
	}).Debug("voyage client configured")

	client := NewClientWithDeps(programs, solanaClient, cached, ipfsClient.GatewayURL)
	client.Assembler.WithComputeBudget(unitLimit, unitPrice)
	return client, nil
}

// NewClientWithDeps builds a Client around existing dependencies.
func NewClientWithDeps(programs *common.Programs, solanaClient solana.Client, store ipfs.Store, gatewayURL func(cid string) string) *Client {
	return &Client{
		Programs: programs,

		Solana:   solanaClient,
		Metadata: store,

		BadgeBuilder: badge.NewBuilder(programs),
		BadgeReader:  badge.NewReader(solanaClient, programs),

		CampaignBuilder:   campaign.NewBuilder(programs),
		CampaignReader:    campaign.NewReader(solanaClient, store, programs),
		CampaignPublisher: campaign.NewPublisher(store, gatewayURL),

		Assembler: transaction.NewAssembler(solanaClient),
	}
}

// NewBadgeView returns a badge view for session backed by the client's
// reader.
func (c *Client) NewBadgeView(session *common.WalletSession) *badge.View {
	return badge.NewView(c.BadgeReader, session)
}
