package middleware

import (
	"net"
	"net/http"

	"github.com/mssola/useragent"

	"peselgate/pkg/requestcontext"
)

// ClientMetadata records the caller's address and a normalized user agent
// ("browser/version (os)") on the request context so audit events carry
// them without handlers re-parsing headers.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
		ctx = requestcontext.WithClientIP(ctx, ip)

		if raw := r.UserAgent(); raw != "" {
			ctx = requestcontext.WithUserAgent(ctx, normalizeUserAgent(raw))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func normalizeUserAgent(raw string) string {
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	normalized := name
	if version != "" {
		normalized += "/" + version
	}
	if os := ua.OS(); os != "" {
		normalized += " (" + os + ")"
	}
	return normalized
}
