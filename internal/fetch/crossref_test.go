// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/pkg/types"
)

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

var natureMicro = types.JournalConfig{
	Key:            "nature-microbiology",
	Name:           "Nature Microbiology",
	ContainerTitle: "Nature Microbiology",
}

const sampleWorks = `{
  "status": "ok",
  "message": {
    "total-results": 3,
    "items": [
      {
        "title": ["Metagenomics of soil"],
        "author": [{"given": "Ada", "family": "Lovelace"}, {"name": "Soil Consortium"}],
        "published": {"date-parts": [[2026, 10, 1]]},
        "URL": "https://doi.org/10.1038/s41564-026-0001",
        "abstract": "<jats:p>Soil <jats:italic>metagenomes</jats:italic></jats:p>",
        "score": 21.5,
        "container-title": ["Nature Microbiology"]
      },
      {
        "author": [],
        "issued": {"date-parts": [[2026]]},
        "URL": "https://doi.org/10.1038/s41564-026-0002"
      },
      {
        "title": ["No link"],
        "issued": {"date-parts": [[null]]}
      }
    ]
  }
}`

// withCrossref points crossrefWorksURL at ts for the duration of the test.
func withCrossref(t *testing.T, ts *httptest.Server) {
	t.Helper()
	old := crossrefWorksURL
	crossrefWorksURL = ts.URL + "/works"
	t.Cleanup(func() { crossrefWorksURL = old })
}

func TestBuildParams(t *testing.T) {
	q := Query{Keywords: []string{"soil", "metagenomics"}, DaysBack: 30, MaxResults: 12, Now: testNow}

	got := buildParams(natureMicro, q, "lab@example.org")

	assert.Equal(t, "soil metagenomics", got["query"])
	assert.Equal(t, "container-title:Nature Microbiology,from-pub-date:2026-09-16", got["filter"])
	assert.Equal(t, "36", got["rows"])
	assert.Equal(t, "score", got["sort"])
	assert.Equal(t, "desc", got["order"])
	assert.Equal(t, crossrefSelect, got["select"])
	assert.Equal(t, "lab@example.org", got["mailto"])
}

func TestBuildParamsNoDateFilter(t *testing.T) {
	q := Query{Keywords: []string{"soil"}, DaysBack: 0, MaxResults: 1}

	got := buildParams(natureMicro, q, "")

	assert.Equal(t, "container-title:Nature Microbiology", got["filter"])
	assert.Equal(t, "20", got["rows"])
	_, ok := got["mailto"]
	assert.False(t, ok)
}

func TestCrossrefFetch(t *testing.T) {
	var gotQuery url.Values
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleWorks)
	}))
	defer ts.Close()
	withCrossref(t, ts)

	src := NewCrossrefSource(httputil.NewClient(types.HTTPConfig{UserAgent: "givelit/test"}), "", nil)
	q := Query{Keywords: []string{"metagenomics"}, DaysBack: 30, MaxResults: 12, Now: testNow}

	papers, err := src.Fetch(context.Background(), natureMicro, q)
	require.NoError(t, err)
	require.Len(t, papers, 3)

	assert.Equal(t, "metagenomics", gotQuery.Get("query"))
	assert.Equal(t, "givelit/test", gotUA)

	first := papers[0]
	assert.Equal(t, "Nature Microbiology", first.Journal)
	assert.Equal(t, "Metagenomics of soil", first.Title)
	assert.Equal(t, []string{"Ada Lovelace", "Soil Consortium"}, first.Authors)
	require.NotNil(t, first.Published)
	assert.Equal(t, "2026-10-01", first.FormattedDate())
	require.NotNil(t, first.Summary)
	assert.Equal(t, "Soil metagenomes", *first.Summary)
	require.NotNil(t, first.SourceScore)
	assert.Equal(t, 21.5, *first.SourceScore)

	second := papers[1]
	assert.Equal(t, "Untitled", second.Title)
	assert.Empty(t, second.Authors)
	assert.Equal(t, "2026-01-01", second.FormattedDate())
	assert.Nil(t, second.Summary)
	assert.Nil(t, second.SourceScore)

	third := papers[2]
	assert.Equal(t, "", third.URL)
	assert.Nil(t, third.Published)
	assert.Equal(t, "Unknown", third.FormattedDate())
}

func TestCrossrefFetchTruncatesToTwiceMaxResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, sampleWorks)
	}))
	defer ts.Close()
	withCrossref(t, ts)

	src := NewCrossrefSource(httputil.NewClient(types.HTTPConfig{}), "", nil)
	papers, err := src.Fetch(context.Background(), natureMicro, Query{Keywords: []string{"x"}, MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, papers, 2)
}

func TestCrossrefFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()
	withCrossref(t, ts)

	src := NewCrossrefSource(httputil.NewClient(types.HTTPConfig{}), "", nil)
	_, err := src.Fetch(context.Background(), natureMicro, Query{Keywords: []string{"x"}, MaxResults: 5})

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se), "err = %v", err)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Contains(t, err.Error(), "Nature Microbiology")
}

func TestCrossrefFetchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"message": `)
	}))
	defer ts.Close()
	withCrossref(t, ts)

	src := NewCrossrefSource(httputil.NewClient(types.HTTPConfig{}), "", nil)
	_, err := src.Fetch(context.Background(), natureMicro, Query{Keywords: []string{"x"}, MaxResults: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing crossref response")
}

func TestCrossrefFetchEmptyQuery(t *testing.T) {
	src := NewCrossrefSource(httputil.NewClient(types.HTTPConfig{}), "", nil)
	_, err := src.Fetch(context.Background(), natureMicro, Query{Keywords: []string{" ", ""}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
