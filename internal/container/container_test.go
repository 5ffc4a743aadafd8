package container

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"alkoteka/parser/internal/config"
	"alkoteka/parser/internal/domain"

	"github.com/stretchr/testify/require"
)

func testConfig(baseURL, output string) *config.Config {
	return &config.Config{
		Alkoteka: config.AlkotekaConfig{
			BaseURL:    baseURL,
			CityUUID:   "985b3eea-46b4-11e7-83ff-00155d026416",
			CityName:   "Krasnodar",
			PerPage:    20,
			Timeout:    5,
			MaxWorkers: 2,
			Categories: []string{baseURL + "/catalog/vino", "/catalog/krepkiy-alkogol"},
		},
		Output: config.OutputConfig{Path: output},
		Log:    config.LogConfig{Level: "info"},
	}
}

func TestContainerRun(t *testing.T) {
	slugs := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/web-api/v1/product" {
			slugs <- r.URL.Query().Get("root_category_slug")
			w.Write([]byte(`{"results": [{"name": "x", "product_url": "/product/x"}]}`))
		}
	}))
	defer server.Close()

	output := filepath.Join(t.TempDir(), "items.json")
	app, err := New(context.Background(), testConfig(server.URL, output))
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Run(context.Background()))
	close(slugs)

	var seen []string
	for slug := range slugs {
		seen = append(seen, slug)
	}
	require.ElementsMatch(t, []string{"vino", "krepkiy-alkogol"}, seen)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var items []domain.Item
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 2)
	require.Equal(t, server.URL+"/product/x", items[0].URL)
}

func TestContainerRejectsBadCategory(t *testing.T) {
	cfg := testConfig("https://alkoteka.com", filepath.Join(t.TempDir(), "items.json"))
	cfg.Alkoteka.Categories = []string{"https://alkoteka.com/"}

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestContainerRejectsUnusableProxies(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	deadProxy := server.URL
	server.Close()

	cfg := testConfig("http://alkoteka.test", filepath.Join(t.TempDir(), "items.json"))
	cfg.Alkoteka.Proxies = []string{deadProxy}

	_, err := New(context.Background(), cfg)
	require.ErrorContains(t, err, "proxies")
}
