// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/pkg/types"
)

// crossrefWorksURL is the default Crossref works endpoint.
var crossrefWorksURL = "https://api.crossref.org/works"

const crossrefSelect = "title,author,issued,published,URL,abstract,score,container-title"

// CrossrefSource queries the Crossref works API, one request per journal.
type CrossrefSource struct {
	Client *resty.Client
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto string
	// BaseURL overrides the works endpoint when set.
	BaseURL string
	Logger  *zap.Logger
}

// NewCrossrefSource builds a source around the shared client.
func NewCrossrefSource(client *resty.Client, mailto string, logger *zap.Logger) *CrossrefSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CrossrefSource{Client: client, Mailto: mailto, Logger: logger}
}

// Name returns the source identifier.
func (s *CrossrefSource) Name() string { return "crossref" }

// Fetch returns the papers Crossref matches for journal, in Crossref's order,
// truncated to q.Keep().
func (s *CrossrefSource) Fetch(ctx context.Context, journal types.JournalConfig, q Query) ([]types.Paper, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := buildParams(journal, q, s.Mailto)
	log := s.logger().With(zap.String("journal", journal.Name))
	log.Debug("requesting crossref works", zap.Any("params", params))

	resp, err := s.Client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(s.worksURL())
	if err != nil {
		return nil, fmt.Errorf("crossref request for %s: %w", journal.Name, err)
	}
	if err := httputil.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("crossref request for %s: %w", journal.Name, err)
	}

	var cr crossrefResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return nil, fmt.Errorf("parsing crossref response for %s: %w", journal.Name, err)
	}

	papers := toPapers(journal, cr.Message.Items, log)
	if keep := q.Keep(); keep > 0 && len(papers) > keep {
		papers = papers[:keep]
	}
	log.Debug("crossref works received",
		zap.Int("items", len(cr.Message.Items)),
		zap.Int("kept", len(papers)),
		zap.Duration("elapsed", resp.Time()))
	return papers, nil
}

func (s *CrossrefSource) worksURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return crossrefWorksURL
}

func (s *CrossrefSource) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// buildParams assembles the query string for one journal.
func buildParams(journal types.JournalConfig, q Query, mailto string) map[string]string {
	filters := []string{"container-title:" + journal.ContainerTitle}
	if after := q.PublishedAfter(); after != "" {
		filters = append(filters, "from-pub-date:"+after)
	}

	params := map[string]string{
		"query":  q.Text(),
		"select": crossrefSelect,
		"sort":   "score",
		"order":  "desc",
		"rows":   strconv.Itoa(q.Rows()),
		"filter": strings.Join(filters, ","),
	}
	if mailto != "" {
		params["mailto"] = mailto
	}
	return params
}

func toPapers(journal types.JournalConfig, items []crossrefItem, log *zap.Logger) []types.Paper {
	papers := make([]types.Paper, 0, len(items))
	for _, it := range items {
		p := types.Paper{
			Journal:     journal.Name,
			Title:       itemTitle(it.Title),
			URL:         strings.TrimSpace(it.URL),
			Published:   itemDate(it),
			Authors:     authorNames(it.Author),
			Summary:     cleanAbstract(it.Abstract),
			SourceScore: it.Score,
		}
		if p.Title == untitled || p.Published == nil {
			log.Debug("incomplete crossref record",
				zap.String("url", p.URL),
				zap.Bool("untitled", p.Title == untitled),
				zap.Bool("undated", p.Published == nil))
		}
		papers = append(papers, p)
	}
	return papers
}
