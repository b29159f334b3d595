// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const untitled = "Untitled"

// crossrefResponse mirrors the subset of the /works payload givelit selects.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefItem `json:"items"`
}

type crossrefItem struct {
	Title          []string         `json:"title"`
	Author         []crossrefAuthor `json:"author"`
	Published      *crossrefDate    `json:"published"`
	Issued         *crossrefDate    `json:"issued"`
	URL            string           `json:"URL"`
	Abstract       string           `json:"abstract"`
	Score          *float64         `json:"score"`
	ContainerTitle []string         `json:"container-title"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

// crossrefDate holds date-parts, e.g. [[2024, 5, 17]]. Crossref uses
// [[null]] for unknown dates, hence the pointers.
type crossrefDate struct {
	DateParts [][]*int `json:"date-parts"`
}

// itemTitle returns the first non-blank title, or "Untitled".
func itemTitle(titles []string) string {
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return untitled
}

// authorName formats an author as "Given Family", falling back to the
// organisational name, then whichever name part exists.
func authorName(a crossrefAuthor) string {
	given := strings.TrimSpace(a.Given)
	family := strings.TrimSpace(a.Family)
	switch {
	case given != "" && family != "":
		return given + " " + family
	case strings.TrimSpace(a.Name) != "":
		return strings.TrimSpace(a.Name)
	case family != "":
		return family
	case given != "":
		return given
	default:
		return "Unknown"
	}
}

func authorNames(authors []crossrefAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, authorName(a))
	}
	return names
}

// itemDate prefers the published date over issued.
func itemDate(it crossrefItem) *time.Time {
	if d := parseDate(it.Published); d != nil {
		return d
	}
	return parseDate(it.Issued)
}

// parseDate converts the first date-parts tuple to a UTC time. Missing month
// and day default to 1; out-of-range values yield nil instead of being
// normalised into a different date.
func parseDate(d *crossrefDate) *time.Time {
	if d == nil || len(d.DateParts) == 0 {
		return nil
	}
	parts := d.DateParts[0]
	if len(parts) == 0 || parts[0] == nil {
		return nil
	}
	year, month, day := *parts[0], 1, 1
	if len(parts) > 1 && parts[1] != nil {
		month = *parts[1]
	}
	if len(parts) > 2 && parts[2] != nil {
		day = *parts[2]
	}
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return nil
	}
	return &t
}

// cleanAbstract strips JATS/HTML markup, joining text nodes with single
// spaces. It returns nil when nothing is left.
func cleanAbstract(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapse(raw)
	}
	var parts []string
	collectText(doc.Selection, &parts)
	return collapse(strings.Join(parts, " "))
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			if t := strings.TrimSpace(s.Text()); t != "" {
				*parts = append(*parts, t)
			}
			return
		}
		collectText(s, parts)
	})
}

func collapse(s string) *string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	return &s
}
