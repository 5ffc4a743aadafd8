package domain

import (
	"net/http"
	"sort"
)

// Cookies is the session cookie set shared by every API request. It is never
// mutated after creation; Merge returns a copy.
type Cookies map[string]string

func (c Cookies) Merge(other map[string]string) Cookies {
	merged := make(Cookies, len(c)+len(other))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// HTTPCookies returns the set as request cookies ordered by name.
func (c Cookies) HTTPCookies() []*http.Cookie {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	cookies := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, &http.Cookie{Name: name, Value: c[name]})
	}
	return cookies
}
