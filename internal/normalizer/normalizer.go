package normalizer

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"alkoteka/parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

const unknownSKU = "unknown"

// Normalizer maps raw API listings onto the output item schema.
type Normalizer struct {
	baseURL *url.URL
}

func New(baseURL string) (*Normalizer, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	return &Normalizer{
		baseURL: u,
	}, nil
}

func (n *Normalizer) Normalize(raw domain.RawListing, captureTime time.Time) domain.Item {
	current := raw.Price.Float()
	original := raw.PrevPrice.Float()
	if original == 0 {
		original = current
	}

	sku := raw.VendorCode.String()
	if sku == "" {
		sku = unknownSKU
	}

	section := ""
	if raw.Category != nil {
		section = raw.Category.Name.String()
	}

	return domain.Item{
		Timestamp:     captureTime.Unix(),
		SKUID:         sku,
		URL:           n.resolveURL(raw.ProductURL.String()),
		Title:         raw.Name.String(),
		Brand:         raw.Subname.String(),
		MarketingTags: append(make([]string, 0, len(raw.ActionLabels)), raw.ActionLabels...),
		Section:       []string{section},
		Price: domain.PriceData{
			Current:       current,
			Original:      original,
			DiscountLabel: DiscountLabel(current, original),
		},
		Stock: domain.Stock{
			InStock: bool(raw.Available),
			Count:   stockCount(raw.QuantityTotal.Float()),
		},
		Assets:   buildAssets(raw.ImageURL.String()),
		Variants: 1,
		Metadata: domain.Metadata{
			Description: "",
			VendorCode:  raw.VendorCode.String(),
			Filters:     buildFilters(raw.FilterLabels),
		},
	}
}

// DiscountLabel renders "Скидка N%" when current is below a positive original
// price, N rounded half to even.
func DiscountLabel(current, original float64) string {
	if original <= 0 || current >= original {
		return ""
	}

	percent := math.RoundToEven((1 - current/original) * 100)
	return fmt.Sprintf("Скидка %d%%", int(percent))
}

func (n *Normalizer) resolveURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return n.baseURL.ResolveReference(ref).String()
}

func buildAssets(imageURL string) domain.Assets {
	assets := domain.Assets{
		MainImage: imageURL,
		SetImages: []string{},
		View360:   []string{},
		Video:     []string{},
	}
	if imageURL != "" {
		assets.SetImages = append(assets.SetImages, imageURL)
	}
	return assets
}

func buildFilters(labels []domain.FilterLabel) map[string]string {
	filters := make(map[string]string, len(labels))
	for _, label := range labels {
		if label.Filter == "" {
			log.Debugf("Skipping filter label without id: %q", label.Title)
			continue
		}
		filters[label.Filter.String()] = label.Title.String()
	}
	return filters
}

// stockCount clamps quantity to [0, MaxInt32] before the int conversion.
func stockCount(quantity float64) int {
	return int(math.Min(math.Max(quantity, 0), math.MaxInt32))
}
