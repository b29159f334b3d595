// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/pkg/types"
)

// --- mock source ---

type mockSource struct {
	papers map[string][]types.Paper
	errs   map[string]error
	delay  map[string]time.Duration
	calls  int32
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Fetch(ctx context.Context, j types.JournalConfig, _ Query) ([]types.Paper, error) {
	atomic.AddInt32(&m.calls, 1)
	if d := m.delay[j.Key]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.errs[j.Key]; err != nil {
		return nil, err
	}
	return m.papers[j.Key], nil
}

func journal(key string) types.JournalConfig {
	return types.JournalConfig{Key: key, Name: strings.ToUpper(key), ContainerTitle: key}
}

var q = Query{Keywords: []string{"phage"}, MaxResults: 5}

func TestFetchAllKeepsLaunchOrder(t *testing.T) {
	src := &mockSource{
		papers: map[string][]types.Paper{
			"a": {{Title: "A1"}, {Title: "A2"}},
			"b": {{Title: "B1"}},
		},
		// a finishes last
		delay: map[string]time.Duration{"a": 30 * time.Millisecond},
	}
	journals := []types.JournalConfig{journal("a"), journal("b"), journal("c")}

	progress := make(chan Event, len(journals))
	results, err := FetchAll(context.Background(), src, journals, q, Options{Progress: progress})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, journals[i], r.Journal)
	}
	assert.Len(t, results[0].Papers, 2)
	assert.Len(t, results[1].Papers, 1)
	assert.Empty(t, results[2].Papers)

	var events []Event
	for ev := range progress {
		events = append(events, ev)
	}
	require.Len(t, events, 3)
	assert.Equal(t, "a", events[2].Journal.Key, "slowest journal is reported last")
	for i, ev := range events {
		assert.Equal(t, i+1, ev.Completed)
		assert.Equal(t, 3, ev.Total)
	}
	assert.Equal(t, 2, events[2].Papers)
}

func TestFetchAllAbortsOnFirstError(t *testing.T) {
	src := &mockSource{
		papers: map[string][]types.Paper{"a": {{Title: "A1"}}},
		errs:   map[string]error{"b": errors.New("boom")},
		delay:  map[string]time.Duration{"c": 5 * time.Second},
	}
	journals := []types.JournalConfig{journal("a"), journal("b"), journal("c")}

	start := time.Now()
	results, err := FetchAll(context.Background(), src, journals, q, Options{})

	require.Error(t, err)
	assert.Nil(t, results)
	assert.Less(t, time.Since(start), 2*time.Second, "in-flight requests should be cancelled")
}

func TestFetchAllRejectsEmptyQuery(t *testing.T) {
	src := &mockSource{}
	progress := make(chan Event, 1)

	_, err := FetchAll(context.Background(), src, []types.JournalConfig{journal("a")}, Query{Keywords: []string{"  "}}, Options{Progress: progress})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, int32(0), atomic.LoadInt32(&src.calls), "no request before validation")
	_, open := <-progress
	assert.False(t, open, "progress channel is closed")
}

func TestFetchAllNoJournals(t *testing.T) {
	results, err := FetchAll(context.Background(), &mockSource{}, nil, q, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetchAllHTTP500AbortsBatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("filter"), "container-title:Science") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, sampleWorks)
	}))
	defer ts.Close()
	withCrossref(t, ts)

	src := NewCrossrefSource(httputil.NewClient(types.HTTPConfig{}), "", nil)
	journals := []types.JournalConfig{
		natureMicro,
		{Key: "science", Name: "Science", ContainerTitle: "Science"},
		{Key: "cell-systems", Name: "Cell Systems", ContainerTitle: "Cell Systems"},
	}

	results, err := FetchAll(context.Background(), src, journals, q, Options{})

	require.Error(t, err)
	assert.Nil(t, results)
	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestFlattenAndEmpty(t *testing.T) {
	results := []types.FetchResult{
		{Journal: journal("a"), Papers: []types.Paper{{Title: "A1"}}},
		{Journal: journal("b")},
		{Journal: journal("c"), Papers: []types.Paper{{Title: "C1"}, {Title: "C2"}}},
	}

	flat := Flatten(results)
	require.Len(t, flat, 3)
	assert.Equal(t, "A1", flat[0].Title)
	assert.Equal(t, "C2", flat[2].Title)

	assert.Equal(t, []string{"B"}, Empty(results))
}

func TestQueryRows(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{1, 20}, {6, 20}, {7, 21}, {12, 36}, {50, 150}, {100, 150},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Query{MaxResults: tt.max}.Rows(), "MaxResults=%d", tt.max)
	}
}

func TestQueryPublishedAfter(t *testing.T) {
	assert.Equal(t, "", Query{DaysBack: 0, Now: testNow}.PublishedAfter())
	assert.Equal(t, "2026-10-15", Query{DaysBack: 1, Now: testNow}.PublishedAfter())
}
