package domain

// RawListing is one product record as returned by the product API.
type RawListing struct {
	Price         Number           `json:"price"`
	PrevPrice     Number           `json:"prev_price"`
	Available     Flag             `json:"available"`
	QuantityTotal Number           `json:"quantity_total"`
	Name          Text             `json:"name"`
	Subname       Text             `json:"subname"` // Brand
	VendorCode    Text             `json:"vendor_code"`
	ProductURL    Text             `json:"product_url"`
	ImageURL      Text             `json:"image_url"`
	Category      *ListingCategory `json:"category"`
	ActionLabels  Labels           `json:"action_labels"`
	FilterLabels  []FilterLabel    `json:"filter_labels"`
}

type ListingCategory struct {
	Name Text `json:"name"`
}

type FilterLabel struct {
	Filter Text `json:"filter"` // Filter id, e.g. "obem"
	Title  Text `json:"title"`  // Human readable value, e.g. "0.75 л"
}
