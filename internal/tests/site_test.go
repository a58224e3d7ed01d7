package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"standardglass-api/internal"
	"standardglass-api/internal/config"
	"standardglass-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Environment:     "test",
		LogLevel:        "info",
		AllowedOrigins:  []string{"*"},
		ContactRate:     60,
		ContactBurst:    2,
		EnableMetrics:   true,
		ShutdownTimeout: time.Second,
	}
}

// startSite runs the router behind a real listener and returns a base URL and
// a client that does not share connections with other tests.
func startSite(t *testing.T, cfg *config.Config) (string, *http.Client) {
	t.Helper()
	srv, err := internal.NewServer(cfg, zap.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router)
	client := &http.Client{Transport: &http.Transport{}, Timeout: 5 * time.Second}
	t.Cleanup(func() {
		client.CloseIdleConnections()
		ts.Close()
	})
	return ts.URL, client
}

func getJSON(t *testing.T, client *http.Client, url string, v any) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp
}

type projectList struct {
	Data []models.Project `json:"data"`
	Meta struct {
		Count    int    `json:"count"`
		Total    int    `json:"total"`
		Category string `json:"category"`
	} `json:"meta"`
}

func TestBrowseCatalog(t *testing.T) {
	base, client := startSite(t, newConfig())

	var list projectList
	getJSON(t, client, base+"/api/projects?category=Healthcare", &list)
	require.Len(t, list.Data, 2)
	assert.Equal(t, 12, list.Meta.Total)

	first := list.Data[0]
	var detail struct {
		Data struct {
			models.Project
			Path string `json:"path"`
		} `json:"data"`
	}
	getJSON(t, client, base+"/api/projects/"+first.Slug, &detail)
	assert.Equal(t, first.ID, detail.Data.ID)
	assert.Equal(t, "/projects/"+first.Slug, detail.Data.Path)

	var related projectList
	getJSON(t, client, base+"/api/projects/"+first.Slug+"/related", &related)
	require.NotEmpty(t, related.Data)
	for _, p := range related.Data {
		assert.Equal(t, first.Category, p.Category)
		assert.NotEqual(t, first.ID, p.ID)
	}
}

func TestUnknownSlugLandsOnListing(t *testing.T) {
	base, client := startSite(t, newConfig())

	var list projectList
	resp := getJSON(t, client, base+"/api/projects/nonexistent-project", &list)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/projects", resp.Request.URL.Path)
	assert.Len(t, list.Data, 12)
	assert.Equal(t, "All", list.Meta.Category)
}

func TestConcurrentReads(t *testing.T) {
	base, client := startSite(t, newConfig())

	slugs := []string{"pikeville-medical-center", "first-national-bank-hq", "appalachian-plaza", "university-center"}
	var wg sync.WaitGroup
	errs := make(chan error, len(slugs)*5)

	for i := 0; i < 5; i++ {
		for _, slug := range slugs {
			wg.Add(1)
			go func(slug string) {
				defer wg.Done()
				resp, err := client.Get(base + "/api/projects/" + slug)
				if err != nil {
					errs <- err
					return
				}
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					errs <- fmt.Errorf("%s: status %d", slug, resp.StatusCode)
				}
			}(slug)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestContactThrottle(t *testing.T) {
	base, client := startSite(t, newConfig())

	post := func() int {
		body := `{"name":"Sam","email":"sam@example.com","message":"Storefront quote"}`
		resp, err := client.Post(base+"/api/contact", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	// Burst of two, then the limiter refuses.
	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	resp, err := client.Get(base + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `contact_submissions_total{outcome="accepted"} 2`)
	assert.Contains(t, string(body), `contact_submissions_total{outcome="rate_limited"} 1`)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, err := internal.NewServer(newConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
