package document

import (
	"regexp"
	"strconv"
	"strings"
)

var openTagRe = regexp.MustCompile(`<(\d+)>`)

// Tag wraps text in the index delimiters <i>text</i>.
func Tag(index int, text string) string {
	n := strconv.Itoa(index)
	return "<" + n + ">" + text + "</" + n + ">"
}

// Untag returns the text inside <index>...</index> and whether s is wrapped in
// exactly that tag.
func Untag(index int, s string) (string, bool) {
	n := strconv.Itoa(index)
	open, closing := "<"+n+">", "</"+n+">"
	if len(s) < len(open)+len(closing) || !strings.HasPrefix(s, open) || !strings.HasSuffix(s, closing) {
		return "", false
	}
	return s[len(open) : len(s)-len(closing)], true
}

// ParseFragments collects every non-overlapping <n>content</n> pair in s,
// scanning left to right. An opening tag without its matching closing tag is
// ignored. When an index repeats, the later content wins.
func ParseFragments(s string) map[int]string {
	fragments := make(map[int]string)
	pos := 0
	for pos < len(s) {
		loc := openTagRe.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		openEnd := pos + loc[1]
		digits := s[pos+loc[2] : pos+loc[3]]
		closing := "</" + digits + ">"

		end := strings.Index(s[openEnd:], closing)
		if end < 0 {
			pos = openEnd
			continue
		}
		index, err := strconv.Atoi(digits)
		if err == nil {
			fragments[index] = s[openEnd : openEnd+end]
		}
		pos = openEnd + end + len(closing)
	}
	return fragments
}
