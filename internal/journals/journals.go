// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journals resolves user-supplied journal labels into search targets.
package journals

import (
	"regexp"
	"strings"

	"github.com/juanvillada/givelit/pkg/types"
)

// Defaults are searched when the user names no journal.
var Defaults = []types.JournalConfig{
	{Key: "nature-microbiology", Name: "Nature Microbiology", ContainerTitle: "Nature Microbiology"},
	{Key: "science", Name: "Science", ContainerTitle: "Science"},
	{Key: "cell-systems", Name: "Cell Systems", ContainerTitle: "Cell Systems"},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormaliseKey converts a label to a kebab-case key, "journal" when nothing
// usable remains.
func NormaliseKey(label string) string {
	key := strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(label), "-"), "-")
	if key == "" {
		return "journal"
	}
	return key
}

// Tokenise splits every value on commas and semicolons and drops blanks.
func Tokenise(values []string) []string {
	var tokens []string
	for _, v := range values {
		for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
			if part = strings.TrimSpace(part); part != "" {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

// Catalog returns the built-in journals followed by extra, skipping extra
// entries without a container title and filling missing keys and names.
func Catalog(extra []types.JournalConfig) []types.JournalConfig {
	out := append([]types.JournalConfig(nil), Defaults...)
	for _, j := range extra {
		j.ContainerTitle = strings.TrimSpace(j.ContainerTitle)
		if j.ContainerTitle == "" {
			continue
		}
		if strings.TrimSpace(j.Name) == "" {
			j.Name = j.ContainerTitle
		}
		if strings.TrimSpace(j.Key) == "" {
			j.Key = NormaliseKey(j.Name)
		}
		out = append(out, j)
	}
	return out
}

// Resolve maps labels to journal configs. A label matches a catalog entry by
// key, name or container title, case-insensitively; unknown labels become
// new targets searched by that exact title. The result is deduplicated by
// container title, keeping the position of the first occurrence. With no
// labels Resolve returns the defaults.
func Resolve(labels []string, catalog []types.JournalConfig) []types.JournalConfig {
	tokens := Tokenise(labels)
	if len(tokens) == 0 {
		return append([]types.JournalConfig(nil), Defaults...)
	}

	lookup := make(map[string]types.JournalConfig, len(catalog)*3)
	for _, j := range catalog {
		for _, alias := range []string{j.Key, j.Name, j.ContainerTitle} {
			if alias = strings.ToLower(strings.TrimSpace(alias)); alias != "" {
				if _, taken := lookup[alias]; !taken {
					lookup[alias] = j
				}
			}
		}
	}

	var resolved []types.JournalConfig
	seen := make(map[string]bool)
	for _, token := range tokens {
		j, ok := lookup[strings.ToLower(token)]
		if !ok {
			j = types.JournalConfig{Key: NormaliseKey(token), Name: token, ContainerTitle: token}
		}
		if seen[j.ContainerTitle] {
			continue
		}
		seen[j.ContainerTitle] = true
		resolved = append(resolved, j)
	}
	return resolved
}

// Names returns the display names of journals.
func Names(js []types.JournalConfig) []string {
	names := make([]string, len(js))
	for i, j := range js {
		names[i] = j.Name
	}
	return names
}
