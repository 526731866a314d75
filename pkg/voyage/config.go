package voyage

import (
	"context"
	"crypto/ed25519"
	"math"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/captain-sol/voyage-client/pkg/config"
	"github.com/captain-sol/voyage-client/pkg/config/env"
	"github.com/captain-sol/voyage-client/pkg/config/memory"
	viperconfig "github.com/captain-sol/voyage-client/pkg/config/viper"
	"github.com/captain-sol/voyage-client/pkg/config/wrapper"
	"github.com/captain-sol/voyage-client/pkg/netutil"
	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/solana/captainsol"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

const (
	envConfigPrefix = "VOYAGE_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = "https://api.devnet.solana.com"

	BadgeProgramConfigEnvName = envConfigPrefix + "BADGE_PROGRAM_ID"
	defaultBadgeProgram       = "4VsU6pPcYaJp9uBx83AjULcKShKchujxLPGAMapnf5jw"

	CampaignProgramConfigEnvName = envConfigPrefix + "CAMPAIGN_PROGRAM_ID"
	defaultCampaignProgram       = "5xGZmXnD9DcdzHqY5H7UEBrkGC57CLejiVQz6AS7EphZ"

	BadgePlatformWalletConfigEnvName = envConfigPrefix + "BADGE_PLATFORM_WALLET"
	defaultBadgePlatformWallet       = "2p8QvK4XLymfAFrdPxJChT5E44bKxHpsguL4K2rjJ1ZU"

	CampaignPlatformWalletConfigEnvName = envConfigPrefix + "CAMPAIGN_PLATFORM_WALLET"
	defaultCampaignPlatformWallet       = "9Hbby1f64TMhu4E9qPQwiP7gm8PLWqm72pumgo4ENpeH"

	IpfsServerUrlConfigEnvName = envConfigPrefix + "IPFS_SERVER_URL"
	defaultIpfsServerUrl       = "http://localhost:3001"

	IpfsApiKeyConfigEnvName = envConfigPrefix + "IPFS_API_KEY"
	defaultIpfsApiKey       = ""

	MetadataCacheBudgetConfigEnvName = envConfigPrefix + "METADATA_CACHE_BUDGET"
	defaultMetadataCacheBudget       = 8 << 20

	MetadataCacheVerboseConfigEnvName = envConfigPrefix + "METADATA_CACHE_VERBOSE"
	defaultMetadataCacheVerbose       = false

	RpcRateLimitConfigEnvName = envConfigPrefix + "RPC_RATE_LIMIT"
	defaultRpcRateLimit       = 0

	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 0

	ComputeUnitPriceConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_PRICE"
	defaultComputeUnitPrice       = 0
)

type conf struct {
	rpcEndpoint            config.String
	badgeProgram           config.String
	campaignProgram        config.String
	badgePlatformWallet    config.String
	campaignPlatformWallet config.String
	ipfsServerUrl          config.String
	ipfsApiKey             config.String
	metadataCacheBudget    config.Uint64
	metadataCacheVerbose   config.Bool
	rpcRateLimit           config.Uint64
	computeUnitLimit       config.Uint64
	computeUnitPrice       config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:            env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			badgeProgram:           env.NewStringConfig(BadgeProgramConfigEnvName, defaultBadgeProgram),
			campaignProgram:        env.NewStringConfig(CampaignProgramConfigEnvName, defaultCampaignProgram),
			badgePlatformWallet:    env.NewStringConfig(BadgePlatformWalletConfigEnvName, defaultBadgePlatformWallet),
			campaignPlatformWallet: env.NewStringConfig(CampaignPlatformWalletConfigEnvName, defaultCampaignPlatformWallet),
			ipfsServerUrl:          env.NewStringConfig(IpfsServerUrlConfigEnvName, defaultIpfsServerUrl),
			ipfsApiKey:             env.NewStringConfig(IpfsApiKeyConfigEnvName, defaultIpfsApiKey),
			metadataCacheBudget:    env.NewUint64Config(MetadataCacheBudgetConfigEnvName, defaultMetadataCacheBudget),
			metadataCacheVerbose:   env.NewBoolConfig(MetadataCacheVerboseConfigEnvName, defaultMetadataCacheVerbose),
			rpcRateLimit:           env.NewUint64Config(RpcRateLimitConfigEnvName, defaultRpcRateLimit),
			computeUnitLimit:       env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			computeUnitPrice:       env.NewUint64Config(ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
		}
	}
}

// WithViperConfigs returns configuration pulled from v, keyed by the same
// names as the environment variables. Bind environment variables or read a
// config file into v before calling.
func WithViperConfigs(v *viper.Viper) ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:            viperconfig.NewStringConfig(v, RpcEndpointConfigEnvName, defaultRpcEndpoint),
			badgeProgram:           viperconfig.NewStringConfig(v, BadgeProgramConfigEnvName, defaultBadgeProgram),
			campaignProgram:        viperconfig.NewStringConfig(v, CampaignProgramConfigEnvName, defaultCampaignProgram),
			badgePlatformWallet:    viperconfig.NewStringConfig(v, BadgePlatformWalletConfigEnvName, defaultBadgePlatformWallet),
			campaignPlatformWallet: viperconfig.NewStringConfig(v, CampaignPlatformWalletConfigEnvName, defaultCampaignPlatformWallet),
			ipfsServerUrl:          viperconfig.NewStringConfig(v, IpfsServerUrlConfigEnvName, defaultIpfsServerUrl),
			ipfsApiKey:             viperconfig.NewStringConfig(v, IpfsApiKeyConfigEnvName, defaultIpfsApiKey),
			metadataCacheBudget:    viperconfig.NewUint64Config(v, MetadataCacheBudgetConfigEnvName, defaultMetadataCacheBudget),
			metadataCacheVerbose:   viperconfig.NewBoolConfig(v, MetadataCacheVerboseConfigEnvName, defaultMetadataCacheVerbose),
			rpcRateLimit:           viperconfig.NewUint64Config(v, RpcRateLimitConfigEnvName, defaultRpcRateLimit),
			computeUnitLimit:       viperconfig.NewUint64Config(v, ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			computeUnitPrice:       viperconfig.NewUint64Config(v, ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
		}
	}
}

type testOverrides struct {
	rpcEndpoint         string
	badgeProgram        string
	campaignProgram     string
	ipfsServerUrl       string
	metadataCacheBudget uint64
	rpcRateLimit        uint64
	computeUnitPrice    uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	orDefault := func(value, defaultValue string) string {
		if len(value) == 0 {
			return defaultValue
		}
		return value
	}

	budget := overrides.metadataCacheBudget
	if budget == 0 {
		budget = defaultMetadataCacheBudget
	}

	return func() *conf {
		return &conf{
			rpcEndpoint:            wrapper.NewStringConfig(memory.NewConfig(orDefault(overrides.rpcEndpoint, defaultRpcEndpoint)), defaultRpcEndpoint),
			badgeProgram:           wrapper.NewStringConfig(memory.NewConfig(orDefault(overrides.badgeProgram, defaultBadgeProgram)), defaultBadgeProgram),
			campaignProgram:        wrapper.NewStringConfig(memory.NewConfig(orDefault(overrides.campaignProgram, defaultCampaignProgram)), defaultCampaignProgram),
			badgePlatformWallet:    wrapper.NewStringConfig(memory.NewConfig(defaultBadgePlatformWallet), defaultBadgePlatformWallet),
			campaignPlatformWallet: wrapper.NewStringConfig(memory.NewConfig(defaultCampaignPlatformWallet), defaultCampaignPlatformWallet),
			ipfsServerUrl:          wrapper.NewStringConfig(memory.NewConfig(orDefault(overrides.ipfsServerUrl, defaultIpfsServerUrl)), defaultIpfsServerUrl),
			ipfsApiKey:             wrapper.NewStringConfig(memory.NewConfig(defaultIpfsApiKey), defaultIpfsApiKey),
			metadataCacheBudget:    wrapper.NewUint64Config(memory.NewConfig(budget), defaultMetadataCacheBudget),
			metadataCacheVerbose:   wrapper.NewBoolConfig(memory.NewConfig(defaultMetadataCacheVerbose), defaultMetadataCacheVerbose),
			rpcRateLimit:           wrapper.NewUint64Config(memory.NewConfig(overrides.rpcRateLimit), defaultRpcRateLimit),
			computeUnitLimit:       wrapper.NewUint64Config(memory.NewConfig(uint64(defaultComputeUnitLimit)), defaultComputeUnitLimit),
			computeUnitPrice:       wrapper.NewUint64Config(memory.NewConfig(overrides.computeUnitPrice), defaultComputeUnitPrice),
		}
	}
}

// programs resolves the configured program and wallet addresses.
func (c *conf) programs(ctx context.Context) (*common.Programs, error) {
	var err error
	programs := &common.Programs{}

	if programs.Badge, err = decodeKey(c.badgeProgram.Get(ctx), badge.PROGRAM_ID); err != nil {
		return nil, errors.Wrap(err, "invalid badge program id")
	}
	if programs.BadgePlatformWallet, err = decodeKey(c.badgePlatformWallet.Get(ctx), badge.PLATFORM_WALLET); err != nil {
		return nil, errors.Wrap(err, "invalid badge platform wallet")
	}
	if programs.Campaign, err = decodeKey(c.campaignProgram.Get(ctx), captainsol.PROGRAM_ID); err != nil {
		return nil, errors.Wrap(err, "invalid campaign program id")
	}
	if programs.CampaignPlatformWallet, err = decodeKey(c.campaignPlatformWallet.Get(ctx), captainsol.PLATFORM_WALLET); err != nil {
		return nil, errors.Wrap(err, "invalid campaign platform wallet")
	}

	return programs, programs.Validate()
}

// validateEndpoints checks the RPC and IPFS server URLs before anything
// connects to them.
func (c *conf) validateEndpoints(ctx context.Context) error {
	if err := netutil.ValidateHttpUrl(c.rpcEndpointUrl(ctx), false); err != nil {
		return errors.Wrap(err, "invalid rpc endpoint")
	}
	if err := netutil.ValidateHttpUrl(c.ipfsServerUrl.Get(ctx), false); err != nil {
		return errors.Wrap(err, "invalid ipfs server url")
	}
	return nil
}

// rpcEndpointUrl returns the configured endpoint with cluster monikers such
// as "devnet" expanded.
func (c *conf) rpcEndpointUrl(ctx context.Context) string {
	return solana.ResolveEndpoint(c.rpcEndpoint.Get(ctx))
}

// computeBudget returns the configured compute unit limit and price.
func (c *conf) computeBudget(ctx context.Context) (uint32, uint64, error) {
	limit := c.computeUnitLimit.Get(ctx)
	if limit > math.MaxUint32 {
		return 0, 0, errors.Errorf("compute unit limit %d exceeds %d", limit, uint32(math.MaxUint32))
	}
	return uint32(limit), c.computeUnitPrice.Get(ctx), nil
}

func decodeKey(value string, defaultValue ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(value) == 0 {
		return defaultValue, nil
	}

	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, err
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("expected %d bytes, got %d", ed25519.PublicKeySize, len(decoded))
	}
	return decoded, nil
}
