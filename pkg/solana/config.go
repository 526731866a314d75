package solana

import "strings"

// Cluster monikers accepted in place of an RPC endpoint URL.
var clusterEndpoints = map[string]string{
	"devnet":       "https://api.devnet.solana.com",
	"testnet":      "https://api.testnet.solana.com",
	"mainnet-beta": "https://api.mainnet-beta.solana.com",
	"localnet":     "http://127.0.0.1:8899",
}

// ResolveEndpoint maps a cluster moniker such as "devnet" to its public RPC
// endpoint. Any other value is returned unchanged.
func ResolveEndpoint(value string) string {
	if endpoint, ok := clusterEndpoints[strings.ToLower(strings.TrimSpace(value))]; ok {
		return endpoint
	}
	return value
}
