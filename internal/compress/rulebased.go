package compress

import (
	"regexp"
	"strings"
)

// fillerPatterns match greeting, pleasantry, and closing phrases that carry
// no content, wherever they occur, case-insensitively.
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^(?:hi|hello|hey|thanks|thank you|sure|okay|ok|great|got it|understood|absolutely|certainly|of course)\b[!.,]?\s*`),
	regexp.MustCompile(`(?i)i'?m doing (?:well|great|good|fine)(?:,\s*thanks?(?: you)?)?[!.]?\s*`),
	regexp.MustCompile(`(?i)hope that helps[!.]?\s*`),
	regexp.MustCompile(`(?i)let me know if you (?:have|need) (?:any )?(?:more )?(?:questions|help|anything)[!.]?\s*`),
	regexp.MustCompile(`(?i)is there anything else[^?]*\?\s*`),
	regexp.MustCompile(`(?i)feel free to ask[^.]*\.\s*`),
	regexp.MustCompile(`(?i)you'?re welcome[!.]?\s*`),
	regexp.MustCompile(`(?i)i'?d be happy to help[!.]?\s*`),
	regexp.MustCompile(`(?i)that'?s a great question[!.]?\s*`),
	regexp.MustCompile(`(?i)i understand your concern[^.]*\.\s*`),
}

// CompressRuleBased strips filler phrases, then drops exact duplicate lines
// (first occurrence wins, matching on the trimmed lower-cased form). Blank
// lines are never deduplicated, so paragraph spacing survives. Safe to run
// on already-cleaned text.
func CompressRuleBased(text string) string {
	for _, re := range fillerPatterns {
		text = re.ReplaceAllString(text, "")
	}

	seen := make(map[string]bool)
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		norm := strings.ToLower(strings.TrimSpace(line))
		if norm == "" {
			kept = append(kept, line)
			continue
		}
		if !seen[norm] {
			seen[norm] = true
			kept = append(kept, line)
		}
	}

	out := strings.Join(kept, "\n")
	out = multiNLRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
