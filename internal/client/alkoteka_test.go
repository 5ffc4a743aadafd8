package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"alkoteka/parser/internal/config"
	"alkoteka/parser/internal/domain"

	"github.com/stretchr/testify/require"
)

const testCityUUID = "985b3eea-46b4-11e7-83ff-00155d026416"

func testConfig(baseURL string) config.AlkotekaConfig {
	return config.AlkotekaConfig{
		BaseURL:        baseURL,
		CityUUID:       testCityUUID,
		CityName:       "Krasnodar",
		PerPage:        20,
		Timeout:        5,
		MaxWorkers:     1,
		UserAgent:      "test-agent",
		AcceptLanguage: "ru-RU",
		Referer:        baseURL + "/",
	}
}

func TestBootstrapMergesSessionCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, csrfPath, r.URL.Path)
		require.Equal(t, testCityUUID, r.URL.Query().Get("city_uuid"))

		city, err := r.Cookie("city")
		require.NoError(t, err)
		require.Equal(t, "Krasnodar", city.Value)
		age, err := r.Cookie("age_confirmed")
		require.NoError(t, err)
		require.Equal(t, "true", age.Value)

		w.Header().Add("Set-Cookie", "XSRF-TOKEN=tok%3D; path=/")
		w.Header().Add("Set-Cookie", "sid=abc123; path=/; httponly")
		w.Header().Add("Set-Cookie", "ignored=1; path=/")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewAlkotekaClient(testConfig(server.URL), nil)
	defer client.Close()

	cookies, err := client.Bootstrap(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Cookies{
		"city":          "Krasnodar",
		"age_confirmed": "true",
		"XSRF-TOKEN":    "tok%3D",
		"sid":           "abc123",
	}, cookies)
}

func TestBootstrapWithoutSetCookieKeepsBaseline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewAlkotekaClient(testConfig(server.URL), nil)
	defer client.Close()

	cookies, err := client.Bootstrap(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Cookies{"city": "Krasnodar", "age_confirmed": "true"}, cookies)
}

func TestBootstrapTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewAlkotekaClient(testConfig(baseURL), nil)
	defer client.Close()

	cookies, err := client.Bootstrap(context.Background())
	require.Error(t, err)
	require.Equal(t, domain.Cookies{"city": "Krasnodar", "age_confirmed": "true"}, cookies)
}

func TestGetProductPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, productPath, r.URL.Path)

		query := r.URL.Query()
		require.Equal(t, testCityUUID, query.Get("city_uuid"))
		require.Equal(t, "2", query.Get("page"))
		require.Equal(t, "20", query.Get("per_page"))
		require.Equal(t, "vino", query.Get("root_category_slug"))

		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		require.Equal(t, "ru-RU", r.Header.Get("Accept-Language"))

		sid, err := r.Cookie("sid")
		require.NoError(t, err)
		require.Equal(t, "abc123", sid.Value)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": [{"name": "Шардоне", "price": 500}], "meta": {"total": 45, "per_page": 20}}`)
	}))
	defer server.Close()

	client := NewAlkotekaClient(testConfig(server.URL), nil)
	defer client.Close()

	cookies := domain.Cookies{"city": "Krasnodar", "sid": "abc123"}
	page, err := client.GetProductPage(context.Background(), vino, 2, cookies)
	require.NoError(t, err)

	require.Equal(t, 2, page.PageNumber)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Listings, 1)
	require.Equal(t, "Шардоне", page.Listings[0].Name.String())
}

func TestGetProductPageErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			fmt.Fprint(w, `not json`)
		}
	}))
	defer server.Close()

	client := NewAlkotekaClient(testConfig(server.URL), nil)
	defer client.Close()

	_, err := client.GetProductPage(context.Background(), vino, 1, domain.Cookies{})
	require.ErrorIs(t, err, ErrHTTPStatus)

	_, err = client.GetProductPage(context.Background(), vino, 2, domain.Cookies{})
	require.ErrorIs(t, err, ErrInvalidJSON)
}
