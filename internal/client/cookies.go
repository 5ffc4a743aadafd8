package client

import "strings"

const (
	CookieXSRFToken = "XSRF-TOKEN"
	CookieSessionID = "sid"
)

// SessionCookieKeys lists the Set-Cookie keys carried over from the csrf response.
var SessionCookieKeys = []string{CookieXSRFToken, CookieSessionID}

// ParseSetCookie extracts allow-listed key=value pairs from a raw Set-Cookie
// header. Multiple cookies are separated by commas and attributes by semicolons;
// only the leading pair of each cookie is considered.
func ParseSetCookie(header string, allowed []string) map[string]string {
	allow := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allow[key] = struct{}{}
	}

	cookies := make(map[string]string)
	for _, part := range strings.Split(header, ",") {
		pair, _, _ := strings.Cut(part, ";")

		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if _, ok := allow[key]; !ok {
			continue
		}
		cookies[key] = strings.TrimSpace(value)
	}

	return cookies
}
