// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package radar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvillada/givelit/internal/config"
	"github.com/juanvillada/givelit/internal/coverage"
	"github.com/juanvillada/givelit/internal/fetch"
	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/internal/report"
	"github.com/juanvillada/givelit/pkg/types"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

// worksFor returns a Crossref works payload with the given items.
func worksFor(items ...string) string {
	return fmt.Sprintf(`{"status":"ok","message":{"items":[%s]}}`, strings.Join(items, ","))
}

func item(title, url, abstract string, y, m, d int) string {
	return fmt.Sprintf(`{"title":[%q],"URL":%q,"abstract":%q,"published":{"date-parts":[[%d,%d,%d]]},"author":[{"given":"Ada","family":"Lovelace"}]}`,
		title, url, abstract, y, m, d)
}

// crossrefStub serves a response per container title and counts requests.
type crossrefStub struct {
	bodies   map[string]string
	statuses map[string]int
	calls    atomic.Int32
}

func (s *crossrefStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)
	filter := r.URL.Query().Get("filter")
	title := strings.TrimPrefix(strings.Split(filter, ",")[0], "container-title:")
	if code, ok := s.statuses[title]; ok {
		w.WriteHeader(code)
		fmt.Fprint(w, "upstream exploded")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	body, ok := s.bodies[title]
	if !ok {
		body = worksFor()
	}
	fmt.Fprint(w, body)
}

func newSource(t *testing.T, stub *crossrefStub) fetch.Source {
	t.Helper()
	ts := httptest.NewServer(stub)
	t.Cleanup(ts.Close)
	src := fetch.NewCrossrefSource(httputil.NewClient(types.HTTPConfig{Timeout: 5 * time.Second}), "", nil)
	src.BaseURL = ts.URL + "/works"
	return src
}

func baseConfig() types.RadarConfig {
	return types.RadarConfig{
		Keywords: []string{"metagenomics, phage"},
		Limit:    12,
		Days:     30,
		Sort:     types.SortScore,
		Format:   types.FormatCLI,
	}
}

func TestRunEndToEnd(t *testing.T) {
	stub := &crossrefStub{bodies: map[string]string{
		"Science": worksFor(
			item("Phage metagenomics in soil", "https://doi.org/10.1/a", "phage everywhere", 2026, 10, 6),
			item("Old metagenomics", "https://doi.org/10.1/old", "", 2025, 1, 1),
		),
		"Nature Microbiology": worksFor(
			item("Metagenomics without links", "", "", 2026, 10, 10),
			item("Gut metagenomics", "https://doi.org/10.1/b", "", 2026, 10, 15),
		),
	}}

	var mu sync.Mutex
	var events []fetch.Event
	in, err := Run(context.Background(), baseConfig(), Deps{
		Source: newSource(t, stub),
		Now:    now,
		OnProgress: func(ev fetch.Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, ev)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), stub.calls.Load())
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[2].Completed)
	assert.Equal(t, 3, events[2].Total)

	assert.Equal(t, []string{"metagenomics", "phage"}, in.Keywords)
	assert.Equal(t, []string{"Nature Microbiology", "Science", "Cell Systems"}, in.Journals)
	assert.Equal(t, []string{"Cell Systems"}, in.Missing)
	assert.Equal(t, "3", in.Options[report.OptJournalCount])
	assert.Equal(t, "12", in.Options[report.OptLimit])
	assert.Equal(t, now, in.Generated)

	// the link-less paper and the paper older than 30 days are dropped
	require.Len(t, in.Papers, 2)
	assert.Equal(t, "Phage metagenomics in soil", in.Papers[0].Title)
	assert.Equal(t, 2, in.Papers[0].MatchCount)
	assert.Equal(t, "Gut metagenomics", in.Papers[1].Title)

	require.Len(t, in.Coverage, 2)
	assert.Equal(t, coverage.Full, in.Coverage[0].Level)
	assert.Equal(t, coverage.Near, in.Coverage[1].Level)
}

func TestRunAbortsOnUpstreamError(t *testing.T) {
	stub := &crossrefStub{
		bodies:   map[string]string{"Nature Microbiology": worksFor(item("x", "https://doi.org/10.1/x", "", 2026, 10, 1))},
		statuses: map[string]int{"Science": http.StatusInternalServerError},
	}

	in, err := Run(context.Background(), baseConfig(), Deps{Source: newSource(t, stub), Now: now})

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "crossref request failed: "))
	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Empty(t, in.Papers)
}

func TestRunRejectsInputBeforeFetching(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.RadarConfig)
		want   error
	}{
		{"no keywords", func(c *types.RadarConfig) { c.Keywords = []string{" ", ","} }, ErrNoKeywords},
		{"limit out of range", func(c *types.RadarConfig) { c.Limit = 0 }, config.ErrInvalidConfig},
		{"negative days", func(c *types.RadarConfig) { c.Days = -3 }, config.ErrInvalidConfig},
		{"bad sort", func(c *types.RadarConfig) { c.Sort = "alphabetical" }, config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &crossrefStub{}
			cfg := baseConfig()
			tt.mutate(&cfg)

			_, err := Run(context.Background(), cfg, Deps{Source: newSource(t, stub), Now: now})

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, stub.calls.Load())
		})
	}
}

func TestRunCustomJournalsAndSort(t *testing.T) {
	stub := &crossrefStub{bodies: map[string]string{
		"The ISME Journal": worksFor(item("Zeta metagenomics", "https://doi.org/10.1/z", "", 2026, 10, 1)),
		"mBio":             worksFor(item("Alpha metagenomics", "https://doi.org/10.1/m", "", 2026, 10, 15)),
	}}
	cfg := baseConfig()
	cfg.Keywords = []string{"metagenomics"}
	cfg.Journals = []string{"isme; mBio"}
	cfg.Catalog = []types.JournalConfig{{Key: "isme", ContainerTitle: "The ISME Journal"}}
	cfg.Sort = types.SortJournal

	in, err := Run(context.Background(), cfg, Deps{Source: newSource(t, stub), Now: now})
	require.NoError(t, err)

	assert.Equal(t, []string{"The ISME Journal", "mBio"}, in.Journals)
	require.Len(t, in.Papers, 2)
	assert.Equal(t, "mBio", in.Papers[0].Journal)
	assert.Equal(t, "The ISME Journal", in.Papers[1].Journal)
	assert.Empty(t, in.Missing)
}

func TestKeywords(t *testing.T) {
	got, err := Keywords([]string{" soil ", "phage,virome", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"soil", "phage", "virome"}, got)

	_, err = Keywords(nil)
	assert.ErrorIs(t, err, ErrNoKeywords)
}
