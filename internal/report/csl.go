// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/juanvillada/givelit/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML form, readable by Pandoc and
// reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes the ranked papers as a CSL-YAML list.
func WriteCSL(w io.Writer, in Input) error {
	items := make([]CSLItem, len(in.Papers))
	for i, p := range in.Papers {
		items[i] = toCSLItem(p, i+1)
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding csl: %w", err)
	}
	return enc.Close()
}

func toCSLItem(p types.Paper, rank int) CSLItem {
	item := CSLItem{
		Type:           "article-journal",
		Title:          p.Title,
		ContainerTitle: p.Journal,
		Abstract:       p.SummaryText(),
		URL:            p.URL,
		DOI:            doiFromURL(p.URL),
		Note:           fmt.Sprintf("givelit relevance %.2f", p.Relevance),
	}
	item.ID = item.DOI
	if item.ID == "" {
		item.ID = fmt.Sprintf("givelit-%d", rank)
	}

	for _, a := range p.Authors {
		if a == "Unknown" {
			continue
		}
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if p.Published != nil {
		d := p.Published
		item.Issued = &CSLDate{DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}}}
	}
	return item
}

// doiFromURL extracts the DOI from doi.org links, "" otherwise.
func doiFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "doi.org" && host != "dx.doi.org" {
		return ""
	}
	doi := strings.TrimPrefix(u.Path, "/")
	if !strings.HasPrefix(doi, "10.") {
		return ""
	}
	return doi
}

// parseAuthorName splits a full name on its last space into given and
// family parts. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{Given: name[:idx], Family: name[idx+1:]}
}
