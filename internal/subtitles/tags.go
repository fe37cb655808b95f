package subtitles

import (
	"regexp"
	"strings"
)

var (
	assOverrideRE = regexp.MustCompile(`\{[^}]*\}`)
	rubyTextRE    = regexp.MustCompile(`(?s)<rt>.*?</rt>`)
	htmlTagRE     = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
)

// assBreakReplacer converts ASS line/space escapes to plain characters.
var assBreakReplacer = strings.NewReplacer(
	"\\N", " ",
	"\\n", " ",
	"\\h", " ",
)

// PlainText strips markup from a cue: ASS override blocks ({\i1}, karaoke
// and drawing tags), ruby annotation bodies, and HTML-style formatting tags
// (<i>, <font>, VTT voice spans). Line breaks collapse to single spaces so
// skip patterns see one logical line.
func PlainText(text string) string {
	text = assOverrideRE.ReplaceAllString(text, "")
	text = rubyTextRE.ReplaceAllString(text, "")
	text = htmlTagRE.ReplaceAllString(text, "")
	text = assBreakReplacer.Replace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.Join(strings.Fields(text), " ")
}
