package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Category is a catalog section identified by the last segment of its listing path.
type Category struct {
	Path string `json:"path"` // e.g. /catalog/vino
	Slug string `json:"slug"` // e.g. vino
}

// NewCategory derives a category from a catalog start URL or bare path.
func NewCategory(startURL string) (Category, error) {
	u, err := url.Parse(strings.TrimSpace(startURL))
	if err != nil {
		return Category{}, fmt.Errorf("invalid category url %q: %w", startURL, err)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return Category{}, fmt.Errorf("category url %q has no path", startURL)
	}

	segments := strings.Split(path, "/")
	return Category{
		Path: "/" + path,
		Slug: segments[len(segments)-1],
	}, nil
}

func (c Category) String() string {
	return c.Slug
}
