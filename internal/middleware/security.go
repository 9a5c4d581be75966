package middleware

import (
	"net/http"
	"strings"
)

// SecurityHeaders sets the Content-Security-Policy and related headers on
// every response. imageDomains are the external hosts images may load
// from; avatars come from the Discord CDN.
func SecurityHeaders(imageDomains []string) func(http.Handler) http.Handler {
	csp := ContentSecurityPolicy(imageDomains)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	}
}

// ContentSecurityPolicy builds the policy string. Scripts, styles and
// connections (including the presence websocket) are same-origin only.
func ContentSecurityPolicy(imageDomains []string) string {
	img := []string{"'self'", "data:"}
	for _, d := range imageDomains {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !strings.Contains(d, "://") {
			d = "https://" + d
		}
		img = append(img, d)
	}

	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self'",
		"img-src " + strings.Join(img, " "),
		"connect-src 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")
}
