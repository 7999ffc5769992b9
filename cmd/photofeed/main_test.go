package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photofeed/internal/config"
	"photofeed/internal/domain"
	"photofeed/internal/eventbus"
)

type stubSearcher struct {
	photos []domain.Photo
	err    error
	terms  []string
}

func (s *stubSearcher) Search(_ context.Context, term string) ([]domain.Photo, error) {
	s.terms = append(s.terms, term)
	return s.photos, s.err
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-q", "cats", "--debounce", "250ms", "--base-url", "http://localhost:8080", "--pairing", "positional"})
	require.NoError(t, err)

	assert.Equal(t, "cats", opts.query)
	assert.Equal(t, 250*time.Millisecond, opts.debounce)
	assert.Equal(t, "http://localhost:8080", opts.baseURL)
	assert.Equal(t, "positional", opts.pairing)
}

func TestParseFlagsPositionalQuery(t *testing.T) {
	opts, err := parseFlags([]string{"dogs"})
	require.NoError(t, err)
	assert.Equal(t, "dogs", opts.query)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	err := applyOverrides(cfg, options{baseURL: "http://example.test", debounce: 300 * time.Millisecond, logLevel: "debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", cfg.FeedBaseURL)
	assert.Equal(t, 300, cfg.DebounceMS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "item", cfg.Pairing)
}

func TestApplyOverridesRejectsBadBaseURL(t *testing.T) {
	cfg := config.DefaultConfig()
	require.Error(t, applyOverrides(cfg, options{baseURL: "not a url"}))
}

func TestNewFetcherRejectsUnknownPairing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pairing = "zip"
	_, err := newFetcher(cfg)
	require.Error(t, err)
}

func TestRunOncePrintsPhotos(t *testing.T) {
	searcher := &stubSearcher{photos: []domain.Photo{
		{Title: "Cat", Description: "A cat", URL: "http://img/1.jpg"},
		{Title: "Dog", URL: "http://img/2.jpg"},
	}}
	var out bytes.Buffer

	require.NoError(t, runOnce(context.Background(), searcher, "  cats ", &out, false))

	assert.Equal(t, []string{"cats"}, searcher.terms)
	assert.Equal(t, "Cat\nA cat\nhttp://img/1.jpg\n\nDog\nhttp://img/2.jpg\n", out.String())
}

func TestRunOnceNoResults(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runOnce(context.Background(), &stubSearcher{}, "cats", &out, false))
	assert.Equal(t, "No photos for \"cats\"\n", out.String())
}

func TestRunOnceErrors(t *testing.T) {
	var out bytes.Buffer
	searcher := &stubSearcher{err: errors.New("boom")}

	assert.ErrorIs(t, runOnce(context.Background(), searcher, "   ", &out, false), errEmptyQuery)
	assert.Empty(t, searcher.terms)

	assert.EqualError(t, runOnce(context.Background(), searcher, "cats", &out, false), "boom")
	assert.Empty(t, out.String())
}

const feedBody = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/"><channel><item>
<media:title>Whiskers</media:title>
<media:description type="html">&lt;b&gt;Cute&lt;/b&gt; cat</media:description>
<media:thumbnail url="https://img.example.com/1.jpg"/>
</item></channel></rss>`

func tempStdout(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stdout")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRunOneShotAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, feedBody)
	}))
	defer srv.Close()

	out := tempStdout(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, run([]string{"--config", cfgPath, "--base-url", srv.URL, "-q", "cats"}, out))

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Equal(t, "Whiskers\nCute cat\nhttps://img.example.com/1.jpg\n", string(data))
}

func TestRunReturnsUsageErrors(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--bogus"}},
		{name: "bad base url", args: []string{"--config", cfgPath, "--base-url", "nope", "-q", "cats"}},
		{name: "bad pairing", args: []string{"--config", cfgPath, "--pairing", "zip", "-q", "cats"}},
		{name: "no query without terminal", args: []string{"--config", cfgPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, tempStdout(t))
			require.Error(t, err)
			assert.True(t, errors.As(err, new(usageError)), "got %v", err)
		})
	}
}

func TestUIEventsSubscribedBeforeConfigLoad(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	bus := eventbus.New(log)
	defer bus.Close()

	events := subscribeUIEvents(bus, log)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	svc := config.NewConfigService(cfgPath, bus)
	_, err := svc.Load()
	require.NoError(t, err)
	require.NoError(t, svc.Save(config.DefaultConfig()))

	var got []eventbus.DomainEvent
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e)
		case <-time.After(time.Second):
			t.Fatalf("only received %d events", len(got))
		}
	}
	assert.Equal(t, eventbus.ConfigLoadedEvent{Path: cfgPath}, got[0])
	assert.Equal(t, eventbus.ConfigSavedEvent{Path: cfgPath}, got[1])
}
