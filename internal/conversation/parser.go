package conversation

import (
	"regexp"
	"strings"
)

// speakerLabels are the turn labels recognized at the start of a line.
// The trailing colon in the patterns below keeps a label from matching
// inside a longer word ("Username:" is not a "User" turn).
var speakerLabels = []string{
	"User", "ChatGPT", "Assistant", "System", "Human",
	"AI", "Claude", "Gemini", "Copilot", "You", "Bot",
}

var (
	labelRe     = regexp.MustCompile(`(?im)^(` + strings.Join(speakerLabels, "|") + `)\s*:\s*`)
	lineLabelRe = regexp.MustCompile(`(?i)^(` + strings.Join(speakerLabels, "|") + `)\s*:\s*`)
	segmentRe   = regexp.MustCompile(`(?i)^(\S+)\s*:\s*`)
)

// Parse turns raw conversation text into ordered messages. Labeled-turn
// detection runs first; if fewer than two labels appear, a line-based scan
// takes over; if that yields nothing either, the whole trimmed text becomes
// a single untagged message. The result is never empty.
func Parse(text string) []Message {
	var messages []Message

	if locs := labelRe.FindAllStringIndex(text, -1); len(locs) >= 2 {
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			segment := strings.TrimSpace(text[loc[0]:end])
			m := segmentRe.FindStringSubmatch(segment)
			if m == nil {
				continue
			}
			content := strings.TrimSpace(segment[len(m[0]):])
			if content != "" {
				messages = append(messages, Message{Role: NormalizeRole(m[1]), Content: content})
			}
		}
	}

	if len(messages) == 0 {
		messages = parseLines(text)
	}

	if len(messages) == 0 {
		messages = append(messages, Message{Role: RoleConversation, Content: strings.TrimSpace(text)})
	}

	return messages
}

// parseLines scans line by line: a recognized label starts a new message and
// flushes the accumulated one; everything else accumulates under the current
// role, which starts as the conversation sentinel.
func parseLines(text string) []Message {
	var messages []Message
	role := RoleConversation
	var content []string

	flush := func() {
		if len(content) == 0 {
			return
		}
		body := strings.TrimSpace(strings.Join(content, "\n"))
		content = nil
		if body != "" {
			messages = append(messages, Message{Role: role, Content: body})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := lineLabelRe.FindStringSubmatch(line); m != nil {
			flush()
			role = NormalizeRole(m[1])
			if rest := strings.TrimSpace(line[len(m[0]):]); rest != "" {
				content = append(content, rest)
			}
		} else {
			content = append(content, line)
		}
	}
	flush()

	return messages
}
