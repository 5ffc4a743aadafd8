package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"alkoteka/parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidJSON       = errors.New("invalid JSON body")
	ErrUnexpectedResults = errors.New("unexpected format for products")
)

type productParser struct {
	perPage int
}

func newProductParser(perPage int) *productParser {
	return &productParser{
		perPage: perPage,
	}
}

type productEnvelope struct {
	Results json.RawMessage `json:"results"`
	Meta    json.RawMessage `json:"meta"`
}

type productMeta struct {
	Total   domain.Number `json:"total"`
	PerPage domain.Number `json:"per_page"`
}

func (p *productParser) ParseProductPage(body []byte, category domain.Category, pageNumber int) (*domain.ProductPage, error) {
	var envelope productEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w at page %d, category %s: %v", ErrInvalidJSON, pageNumber, category, err)
	}

	page := &domain.ProductPage{
		Category:   category,
		PageNumber: pageNumber,
		PerPage:    p.perPage,
		Listings:   make([]domain.RawListing, 0),
	}

	listings, err := p.extractListings(envelope.Results)
	if err != nil {
		return nil, fmt.Errorf("%w at page %d, category %s", err, pageNumber, category)
	}
	page.Listings = listings

	p.extractPaginationInfo(envelope.Meta, page)

	log.Debugf("Parsed page %d of %d with %d listings for %s", page.PageNumber, page.TotalPages, len(page.Listings), category)
	return page, nil
}

func (p *productParser) extractListings(raw json.RawMessage) ([]domain.RawListing, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.RawListing{}, nil
	}
	if raw[0] != '[' {
		return nil, ErrUnexpectedResults
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResults, err)
	}

	listings := make([]domain.RawListing, 0, len(elements))
	for i, element := range elements {
		var listing domain.RawListing
		if err := json.Unmarshal(element, &listing); err != nil {
			log.Warnf("⚠️ Skipping listing %d: %v", i, err)
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// extractPaginationInfo fills totals from meta; a missing or malformed meta
// leaves total at zero, which ends pagination after the current page.
func (p *productParser) extractPaginationInfo(raw json.RawMessage, page *domain.ProductPage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return
	}

	var meta productMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		log.Warnf("⚠️ Ignoring malformed meta at page %d, category %s: %v", page.PageNumber, page.Category, err)
		return
	}

	page.TotalItems = int(meta.Total)
	if perPage := int(meta.PerPage); perPage > 0 {
		page.PerPage = perPage
	}
	page.TotalPages = domain.TotalPages(page.TotalItems, page.PerPage)
}
