package programdoc

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// isFrontMatterDelimiter reports whether line is a "---" delimiter line.
// Trailing blanks and the line break are ignored.
func isFrontMatterDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r\n") == "---"
}

// closingDelimiter returns the index of the line that closes the front matter
// opened on lines[0], or -1 when the document has no complete block.
func closingDelimiter(lines []string) int {
	if len(lines) == 0 || !isFrontMatterDelimiter(lines[0]) {
		return -1
	}

	for i := 1; i < len(lines); i++ {
		if isFrontMatterDelimiter(lines[i]) {
			return i
		}
	}

	return -1
}

// parseFrontMatter splits the YAML front matter from the markdown body. The
// body starts with the line break of the closing delimiter, so its first line
// is the delimiter's line.
func parseFrontMatter(content string) (map[string]any, string, error) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || !isFrontMatterDelimiter(lines[0]) {
		return make(map[string]any), content, nil
	}

	end := closingDelimiter(lines)
	if end == -1 {
		return nil, "", ErrInvalidFrontMatter
	}

	var frontMatter map[string]any

	err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "")), &frontMatter)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if frontMatter == nil {
		frontMatter = make(map[string]any)
	}

	return frontMatter, "\n" + strings.Join(lines[end+1:], ""), nil
}

// countFrontMatterLines returns how many lines the front matter block spans,
// including both delimiters
func countFrontMatterLines(content string) int {
	return closingDelimiter(strings.SplitAfter(content, "\n")) + 1
}
