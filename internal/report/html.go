// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

const htmlAuthors = 6

type htmlCard struct {
	Title   string
	URL     string
	Journal string
	Date    string
	Age     string
	Score   string
	Authors string
	Summary string
}

type htmlSection struct {
	Heading string
	Cards   []htmlCard
}

type htmlPage struct {
	Keywords  string
	Journals  string
	Generated string
	Missing   string
	Summary   string
	Sections  []htmlSection
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// WriteHTML writes a standalone HTML page with one card per paper.
func WriteHTML(w io.Writer, in Input) error {
	page := htmlPage{
		Keywords: quoted(in.Keywords),
		Journals: strings.Join(in.Journals, ", "),
		Missing:  strings.Join(in.Missing, ", "),
		Summary:  strings.Join(Plot(Summarise(in.Papers), PlotWidth), "\n"),
	}
	if !in.Generated.IsZero() {
		page.Generated = in.Generated.UTC().Format("2006-01-02 15:04 UTC")
	}
	for _, bucket := range in.Coverage {
		sec := htmlSection{Heading: fmt.Sprintf("%s (%d)", bucket.Level.Label(), len(bucket.Papers))}
		for _, p := range bucket.Papers {
			card := htmlCard{
				Title:   p.Title,
				URL:     p.URL,
				Journal: p.Journal,
				Date:    p.FormattedDate(),
				Age:     "Days ago: unknown",
				Score:   fmt.Sprintf("%.2f", p.Relevance),
				Authors: authorLine(p.Authors, htmlAuthors),
				Summary: p.SummaryText(),
			}
			if p.AgeDays != nil {
				card.Age = fmt.Sprintf("Days ago: %d", *p.AgeDays)
			}
			if card.Authors == "" {
				card.Authors = "Unknown authors"
			}
			if card.Summary == "" {
				card.Summary = "No abstract available."
			}
			sec.Cards = append(sec.Cards, card)
		}
		page.Sections = append(page.Sections, sec)
	}

	if err := pageTmpl.Execute(w, page); err != nil {
		return fmt.Errorf("rendering html report: %w", err)
	}
	return nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <title>GiveLit Report</title>
    <style>
        :root { --bg: #040404; --text: #7fffb3; --accent: #00ff90; --muted: #3ddc84; --journal: #b8ffd6; --border: rgba(0, 255, 144, 0.35); }
        * { box-sizing: border-box; }
        body { margin: 0 auto; padding: 2.5rem 1.5rem; max-width: 880px; background: var(--bg); color: var(--text); font-family: "IBM Plex Mono", "SFMono-Regular", Menlo, Consolas, monospace; letter-spacing: 0.03em; }
        header.page-header { margin-bottom: 2rem; }
        header.page-header h1 { margin: 0 0 0.75rem 0; font-size: 2rem; color: var(--accent); }
        header.page-header p { margin: 0.25rem 0; }
        .summary-plot { margin: 0 0 1.8rem 0; padding: 1rem; border: 1px solid var(--border); border-radius: 0.6rem; white-space: pre; font-size: 0.9rem; line-height: 1.5; }
        h2.tier { font-size: 1.1rem; color: var(--accent); margin: 1.8rem 0 0.8rem 0; }
        .card { padding: 1.2rem; border: 1px solid var(--border); border-radius: 0.75rem; margin-bottom: 1.1rem; }
        .card h3 { margin: 0 0 0.6rem 0; font-size: 1.25rem; }
        .card a { color: var(--accent); text-decoration: none; }
        .card a:hover { text-decoration: underline; }
        .meta { display: flex; flex-wrap: wrap; gap: 0.75rem; font-size: 0.85rem; color: var(--muted); }
        .journal { color: var(--journal); text-transform: uppercase; letter-spacing: 0.08em; }
        .score { padding: 0.35rem 0.6rem; border: 1px solid var(--accent); border-radius: 0.4rem; }
        .score .value { font-weight: 600; color: var(--accent); }
        .authors { font-size: 0.9rem; margin: 0.9rem 0 0.6rem 0; }
        .abstract { font-size: 0.95rem; line-height: 1.6; color: var(--muted); }
        .missing, footer { margin-top: 0.75rem; font-size: 0.9rem; color: var(--muted); }
    </style>
</head>
<body>
    <header class="page-header">
        <h1>GiveLit Radar</h1>
        <p>Keywords: {{.Keywords}}</p>
        <p>Journals: {{.Journals}}</p>
        {{- if .Generated}}
        <p>Generated: {{.Generated}}</p>
        {{- end}}
        {{- if .Missing}}
        <p class="missing">No recent matches for: {{.Missing}}</p>
        {{- end}}
    </header>
    <main>
        {{- if .Summary}}
        <section class="summary">
            <h2>Journal summary</h2>
            <pre class="summary-plot">{{.Summary}}</pre>
        </section>
        {{- end}}
        {{- range .Sections}}
        <section class="tier">
            <h2 class="tier">{{.Heading}}</h2>
            {{- range .Cards}}
            <article class="card">
                <header>
                    <h3><a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a></h3>
                    <div class="meta">
                        <span class="journal">Journal: {{.Journal}}</span>
                        <span class="date">{{.Date}}</span>
                        <span class="age">{{.Age}}</span>
                        <span class="score">GiveLit score <span class="value">{{.Score}}</span></span>
                    </div>
                </header>
                <p class="authors">{{.Authors}}</p>
                <p class="abstract">{{.Summary}}</p>
            </article>
            {{- end}}
        </section>
        {{- else}}
        <p>No papers matched the filters.</p>
        {{- end}}
    </main>
    <footer>Crafted with GiveLit. Stay on top of the literature.</footer>
</body>
</html>
`
