package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"alkoteka/parser/internal/config"
	"alkoteka/parser/internal/domain"
	"alkoteka/parser/internal/proxy"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	csrfPath    = "/web-api/v1/csrf-cookie"
	productPath = "/web-api/v1/product"
)

// ErrHTTPStatus is returned for product responses with a 4xx or 5xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// AlkotekaClient talks to the alkoteka.com web API.
type AlkotekaClient interface {
	// Bootstrap obtains the session cookie set used by every product request.
	// On a transport error the baseline cookies are returned alongside the error.
	Bootstrap(ctx context.Context) (domain.Cookies, error)
	// GetProductPage fetches and parses one 1-based page of a category.
	GetProductPage(ctx context.Context, category domain.Category, pageNumber int, cookies domain.Cookies) (*domain.ProductPage, error)
	Close() error
}

type alkotekaClient struct {
	config     config.AlkotekaConfig
	baseURL    string
	httpClient *resty.Client
	parser     *productParser
}

func NewAlkotekaClient(cfg config.AlkotekaConfig, proxySupplier proxy.ProxySupplier) AlkotekaClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", cfg.AcceptLanguage).
		SetHeader("Referer", cfg.Referer)

	// Cookies are passed explicitly on each request
	client.SetCookieJar(nil)

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	return &alkotekaClient{
		config:     cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: client,
		parser:     newProductParser(cfg.PerPage),
	}
}

func (c *alkotekaClient) baselineCookies() domain.Cookies {
	return domain.Cookies{
		"city":          c.config.CityName,
		"age_confirmed": "true",
	}
}

func (c *alkotekaClient) Bootstrap(ctx context.Context) (domain.Cookies, error) {
	baseline := c.baselineCookies()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("city_uuid", c.config.CityUUID).
		SetCookies(baseline.HTTPCookies()).
		Get(c.baseURL + csrfPath)
	if err != nil {
		if ctx.Err() != nil {
			return baseline, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return baseline, fmt.Errorf("failed to fetch csrf cookie: %w", err)
	}

	if resp.IsError() {
		log.Warnf("⚠️ CSRF endpoint responded with %s", resp.Status())
	}

	header := strings.Join(resp.Header().Values("Set-Cookie"), ",")
	session := ParseSetCookie(header, SessionCookieKeys)
	if len(session) == 0 {
		log.Warn("⚠️ No session cookies in csrf response, continuing with baseline cookies")
	} else {
		log.Infof("🍪 Obtained session cookies: %d", len(session))
	}

	return baseline.Merge(session), nil
}

func (c *alkotekaClient) GetProductPage(ctx context.Context, category domain.Category, pageNumber int, cookies domain.Cookies) (*domain.ProductPage, error) {
	body, err := c.fetchJSON(ctx, c.baseURL+productPath, map[string]string{
		"city_uuid":          c.config.CityUUID,
		"page":               strconv.Itoa(pageNumber),
		"per_page":           strconv.Itoa(c.config.PerPage),
		"root_category_slug": category.Slug,
	}, cookies)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product page %d for %s: %w", pageNumber, category, err)
	}

	page, err := c.parser.ParseProductPage(body, category, pageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product page: %w", err)
	}

	return page, nil
}

func (c *alkotekaClient) fetchJSON(ctx context.Context, url string, query map[string]string, cookies domain.Cookies) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetHeader("Accept", "application/json").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetCookies(cookies.HTTPCookies()).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status())
	}

	return resp.Bytes(), nil
}

func (c *alkotekaClient) Close() error {
	return c.httpClient.Close()
}
