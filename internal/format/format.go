// Package format serializes finalized portfolio entries into one of
// the supported output encodings.
package format

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gitfolio/internal/portfolio"
)

// Supported output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Entries serializes a collection of entries into the requested
// format. Disabled entries are filtered out and the remainder is
// stable-sorted (featured first, then dateCompleted descending with
// missing dates last) before encoding. The input slice is not mutated.
func Entries(entries []portfolio.PortfolioEntry, format string) (string, error) {
	prepared := Prepare(entries)

	switch format {
	case FormatJSON:
		return toJSON(prepared)
	case FormatYAML:
		return toYAML(prepared), nil
	case FormatMarkdown:
		return toMarkdown(prepared), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml, or markdown)", format)
	}
}

// Prepare filters out disabled entries and applies the canonical
// two-level stable sort. It returns a fresh slice.
func Prepare(entries []portfolio.PortfolioEntry) []portfolio.PortfolioEntry {
	out := make([]portfolio.PortfolioEntry, 0, len(entries))
	for _, e := range entries {
		if e.Enabled {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		// Descending date order, undated entries last.
		if (a.DateCompleted == "") != (b.DateCompleted == "") {
			return b.DateCompleted == ""
		}
		return a.DateCompleted > b.DateCompleted
	})

	return out
}

// OutputPath fixes the extension of a caller-supplied output path to
// match the requested format.
func OutputPath(path, format string) string {
	want := map[string]string{
		FormatJSON:     ".json",
		FormatYAML:     ".yaml",
		FormatMarkdown: ".md",
	}[format]
	if want == "" {
		return path
	}
	ext := filepath.Ext(path)
	if ext == want {
		return path
	}
	return strings.TrimSuffix(path, ext) + want
}

func toJSON(entries []portfolio.PortfolioEntry) (string, error) {
	data, err := json.MarshalIndent(portfolio.EntryList{Projects: entries}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal entries: %w", err)
	}
	return string(data) + "\n", nil
}

// toYAML emits entries line by line with a fixed field order, omitting
// absent fields entirely. A general YAML serializer is deliberately not
// used: field order and omission rules are part of the output contract.
func toYAML(entries []portfolio.PortfolioEntry) string {
	var b strings.Builder
	b.WriteString("projects:\n")

	for _, e := range entries {
		b.WriteString("  - name: " + yamlScalar(e.Name) + "\n")
		writeYAMLField(&b, "shortDescription", e.ShortDescription)
		writeYAMLField(&b, "description", e.Description)
		writeYAMLField(&b, "category", e.Category)
		if len(e.Technologies) > 0 {
			b.WriteString("    technologies: " + yamlInlineList(e.Technologies) + "\n")
		}
		writeYAMLField(&b, "status", e.Status)
		writeYAMLField(&b, "dateCompleted", e.DateCompleted)
		writeYAMLBulletList(&b, "models", e.Models)
		writeYAMLBulletList(&b, "images", e.Images)
		writeYAMLField(&b, "thumbnail", e.Thumbnail)
		if e.Media != nil {
			b.WriteString("    media:\n")
			writeYAMLSubField(&b, "video", e.Media.Video)
			writeYAMLSubField(&b, "website", e.Media.Website)
			writeYAMLSubField(&b, "pdf", e.Media.PDF)
			if e.Media.Game != nil {
				b.WriteString("      game:\n")
				b.WriteString("        type: " + yamlScalar(e.Media.Game.Type) + "\n")
				b.WriteString("        url: " + yamlScalar(e.Media.Game.URL) + "\n")
			}
		}
		if e.Links != nil {
			b.WriteString("    links:\n")
			writeYAMLSubField(&b, "liveDemo", e.Links.LiveDemo)
			writeYAMLSubField(&b, "docs", e.Links.Docs)
		}
		if e.Featured {
			b.WriteString("    featured: true\n")
		}
		writeYAMLField(&b, "github", e.GitHub)
	}

	return b.String()
}

func writeYAMLField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString("    " + key + ": " + yamlScalar(value) + "\n")
}

func writeYAMLSubField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString("      " + key + ": " + yamlScalar(value) + "\n")
}

func writeYAMLBulletList(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString("    " + key + ":\n")
	for _, v := range values {
		b.WriteString("      - " + yamlScalar(v) + "\n")
	}
}

func yamlInlineList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, yamlScalar(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// yamlScalar quotes a value when plain YAML would misread it.
func yamlScalar(s string) string {
	if s == "" || strings.ContainsAny(s, ":#{}[]&*?|>'\"%@`,") ||
		strings.TrimSpace(s) != s || strings.HasPrefix(s, "-") {
		return strconv.Quote(s)
	}
	return s
}

// toMarkdown groups entries by category in first-seen order, one
// heading per category, one sub-heading per entry.
func toMarkdown(entries []portfolio.PortfolioEntry) string {
	var categories []string
	grouped := make(map[string][]portfolio.PortfolioEntry)
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = "Other"
		}
		if _, ok := grouped[cat]; !ok {
			categories = append(categories, cat)
		}
		grouped[cat] = append(grouped[cat], e)
	}

	var b strings.Builder
	b.WriteString("# Portfolio\n")

	for _, cat := range categories {
		b.WriteString("\n## " + cat + "\n")
		for _, e := range grouped[cat] {
			title := e.Name
			if e.Featured {
				title += " ⭐"
			}
			b.WriteString("\n### " + title + "\n\n")
			if e.ShortDescription != "" {
				b.WriteString(e.ShortDescription + "\n\n")
			}
			writeMarkdownItem(&b, "Status", e.Status)
			writeMarkdownItem(&b, "Completed", e.DateCompleted)
			if len(e.Technologies) > 0 {
				writeMarkdownItem(&b, "Technologies", strings.Join(e.Technologies, ", "))
			}
			writeMarkdownItem(&b, "GitHub", e.GitHub)
			if e.Links != nil {
				writeMarkdownItem(&b, "Live Demo", e.Links.LiveDemo)
				writeMarkdownItem(&b, "Docs", e.Links.Docs)
			}
			if e.Media != nil {
				writeMarkdownItem(&b, "Website", e.Media.Website)
				writeMarkdownItem(&b, "Video", e.Media.Video)
			}
			if e.Description != "" && e.Description != e.ShortDescription {
				b.WriteString("\n" + e.Description + "\n")
			}
		}
	}

	return b.String()
}

func writeMarkdownItem(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString("- **" + label + "**: " + value + "\n")
}
