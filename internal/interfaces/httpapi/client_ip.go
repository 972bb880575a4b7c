package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

// IPv6 clients usually own a whole /64, so tracker quotas are shared across it.
const ipv6QuotaPrefix = 64

var clientIPHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

// resolveClientIP prefers proxy headers over the socket address.
func resolveClientIP(r *http.Request) string {
	addr, ok := clientAddr(r)
	if !ok {
		return ""
	}
	return addr.String()
}

// quotaClientIP is the address tracker lookups are rate limited by.
func quotaClientIP(r *http.Request) string {
	addr, ok := clientAddr(r)
	if !ok {
		return ""
	}
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(ipv6QuotaPrefix)
	if err != nil {
		return addr.String()
	}
	return prefix.String()
}

func clientAddr(r *http.Request) (netip.Addr, bool) {
	for _, header := range clientIPHeaders {
		if addr, ok := parseClientAddr(r.Header.Get(header)); ok {
			return addr, true
		}
	}
	return parseClientAddr(r.RemoteAddr)
}

// parseClientAddr takes the first hop of a forwarded chain and drops any port.
func parseClientAddr(raw string) (netip.Addr, bool) {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return netip.Addr{}, false
	}
	if addrPort, err := netip.ParseAddrPort(first); err == nil {
		return addrPort.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(strings.Trim(first, "[]"))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
