package domain

// Item is the normalized output record for a single listing.
type Item struct {
	Timestamp     int64     `json:"timestamp"`
	SKUID         string    `json:"sku_id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Brand         string    `json:"brand"`
	MarketingTags []string  `json:"marketing_tags"`
	Section       []string  `json:"section"`
	Price         PriceData `json:"price"`
	Stock         Stock     `json:"stock"`
	Assets        Assets    `json:"assets"`
	Variants      int       `json:"variants"`
	Metadata      Metadata  `json:"metadata"`
}

type PriceData struct {
	Current       float64 `json:"current"`
	Original      float64 `json:"original"`
	DiscountLabel string  `json:"discount_label"` // "Скидка N%" or empty
}

type Stock struct {
	InStock bool `json:"in_stock"`
	Count   int  `json:"count"`
}

type Assets struct {
	MainImage string   `json:"main_image"`
	SetImages []string `json:"set_images"`
	View360   []string `json:"view360"`
	Video     []string `json:"video"`
}

type Metadata struct {
	Description string            `json:"description"`
	VendorCode  string            `json:"vendor_code"`
	Filters     map[string]string `json:"filters"`
}
