package discovery

import (
	"fmt"
	"net"

	"github.com/jackpal/gateway"
)

// NetworkHint describes the local network relative to the candidate prefixes
type NetworkHint struct {
	Gateway net.IP
	Prefix  string // matching entry of DefaultPrefixes, "" if none
}

// DetectNetworkHint looks up the default gateway from the routing table
func DetectNetworkHint() (NetworkHint, error) {
	gw, err := gateway.DiscoverGateway()
	if err != nil {
		return NetworkHint{}, fmt.Errorf("failed to discover gateway: %w", err)
	}
	return NetworkHint{Gateway: gw, Prefix: MatchPrefix(gw)}, nil
}

// MatchPrefix returns the entry of DefaultPrefixes containing ip, or ""
func MatchPrefix(ip net.IP) string {
	v4 := ip.To4()
	if v4 == nil {
		return ""
	}
	network := fmt.Sprintf("%d.%d.%d", v4[0], v4[1], v4[2])
	for _, prefix := range DefaultPrefixes {
		if prefix == network {
			return prefix
		}
	}
	return ""
}
