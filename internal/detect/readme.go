package detect

import "strings"

// maxParagraphLines caps how many lines of the opening paragraph are
// joined into the long description.
const maxParagraphLines = 3

// shortDescriptionLimit is the character cap for the one-sentence summary.
const shortDescriptionLimit = 120

// ReadmeResult holds what could be extracted from README prose. Either
// field may be empty when the README is missing or content-free.
type ReadmeResult struct {
	Description      string
	ShortDescription string
}

// preferredSections are heading titles whose content is preferred over
// the first paragraph when present.
var preferredSections = []string{"description", "about", "overview"}

// ExtractReadme parses unstructured README text into a long description
// and a single-sentence short description. It never fails; unusable
// input yields an empty result.
func ExtractReadme(text string) ReadmeResult {
	if strings.TrimSpace(text) == "" {
		return ReadmeResult{}
	}

	lines := strings.Split(text, "\n")

	description := firstParagraph(lines, 0)
	if idx, ok := findSection(lines); ok {
		if section := firstParagraph(lines, idx+1); section != "" {
			description = section
		}
	}
	if description == "" {
		return ReadmeResult{}
	}

	return ReadmeResult{
		Description:      description,
		ShortDescription: firstSentence(description),
	}
}

// firstParagraph collects the opening paragraph starting at line start.
// When pastTitle is false, leading heading lines are skipped first to
// establish "past the title" state. Collection stops at the first blank
// line or heading once content has started, or after maxParagraphLines.
func firstParagraph(lines []string, start int) string {
	var collected []string

	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if strings.HasPrefix(line, "#") {
			if len(collected) > 0 {
				break
			}
			continue
		}
		if line == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		if skipMarkupLine(line) {
			continue
		}

		collected = append(collected, line)
		if len(collected) >= maxParagraphLines {
			break
		}
	}

	return strings.Join(collected, " ")
}

// skipMarkupLine reports whether a line is badge or raw markup rather
// than prose: shield badges, bare images, and HTML tags.
func skipMarkupLine(line string) bool {
	return strings.HasPrefix(line, "[![") ||
		strings.HasPrefix(line, "![") ||
		strings.HasPrefix(line, "<")
}

// findSection returns the index of a Description/About/Overview heading
// line, if one exists.
func findSection(lines []string) (int, bool) {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		title := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
		for _, want := range preferredSections {
			if title == want {
				return i, true
			}
		}
	}
	return 0, false
}

// firstSentence returns the text up to and including the first sentence
// terminator, truncated with "..." if it exceeds the character limit.
func firstSentence(text string) string {
	sentence := text
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		sentence = text[:idx+1]
	}
	if runes := []rune(sentence); len(runes) > shortDescriptionLimit {
		sentence = strings.TrimSpace(string(runes[:shortDescriptionLimit])) + "..."
	}
	return sentence
}
