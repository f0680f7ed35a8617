package probe

import (
	"context"
	"net"
	"net/url"
	"time"
)

// DNSChecker treats a target as up when its hostname resolves to at least
// one address.
type DNSChecker struct {
	Resolver *net.Resolver
}

func NewDNSChecker() *DNSChecker {
	return &DNSChecker{Resolver: net.DefaultResolver}
}

func (d *DNSChecker) Check(ctx context.Context, target string) Outcome {
	start := time.Now()
	addrs, err := d.Resolver.LookupHost(ctx, extractHost(target))
	latency := time.Since(start).Seconds() * 1000
	if err != nil {
		return Outcome{Up: false, LatencyMS: latency, Reason: err.Error()}
	}
	if len(addrs) == 0 {
		return Outcome{Up: false, LatencyMS: latency, Reason: "no addresses"}
	}
	return Outcome{Up: true, LatencyMS: latency, Reason: "resolves"}
}

// extractHost pulls the hostname from a URL string; bare hosts pass through.
func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
