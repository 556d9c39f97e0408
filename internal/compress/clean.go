package compress

import (
	"regexp"
	"strings"
)

type replacement struct {
	re   *regexp.Regexp
	with string
}

// noisePatterns strip chat-UI artifacts. They run before the whitespace
// rules so removed tokens can't leave residue those rules no longer see.
var noisePatterns = []replacement{
	{regexp.MustCompile(`(?i)Regenerate\s*response`), ""},
	{regexp.MustCompile(`(?i)Continue\s*generating`), ""},
	{regexp.MustCompile(`(?i)Copy\s*code`), ""},
	{regexp.MustCompile(`(?i)\[Image[^\]]*\]`), "[image]"},
	{regexp.MustCompile(`(?i)ChatGPT said:`), ""},
	{regexp.MustCompile(`(?i)You said:`), ""},
	{regexp.MustCompile(`👍|👎|🔄|📋|Share|Like|Dislike`), ""},
	{regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?\s*(?:GMT|UTC|EST|PST|IST)?[+-]?\d*\b`), ""},
}

var (
	hSpaceRe    = regexp.MustCompile(`[ \t]+`)
	blankLineRe = regexp.MustCompile(`(?m)^[ \t]+$`)
	multiNLRe   = regexp.MustCompile(`\n{3,}`)
)

// Clean strips UI chrome from a message body and normalizes whitespace.
// Pure and idempotent: cleaning cleaned text changes nothing.
func Clean(text string) string {
	for _, p := range noisePatterns {
		text = p.re.ReplaceAllString(text, p.with)
	}
	text = hSpaceRe.ReplaceAllString(text, " ")
	text = blankLineRe.ReplaceAllString(text, "")
	text = multiNLRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
