package compress

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lazypower/ctxport/internal/conversation"
)

const topicLimit = 10

var topicWordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)

// stopWords are common English words plus chat filler, excluded from topic
// extraction.
var stopWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
		"do", "does", "did", "will", "would", "could", "should", "may", "might", "shall", "can",
		"to", "of", "in", "for", "on", "with", "at", "by", "from", "as", "into", "through", "during",
		"before", "after", "above", "below", "between", "and", "but", "or", "nor", "not", "so",
		"yet", "both", "either", "neither", "each", "every", "all", "any", "few", "more", "most",
		"other", "some", "such", "no", "only", "own", "same", "than", "too", "very", "just",
		"because", "if", "when", "while", "about", "that", "this", "it", "its", "my", "your",
		"his", "her", "our", "their", "what", "which", "who", "whom", "how", "then", "there",
		"here", "where", "why", "i", "me", "we", "us", "you", "he", "she", "they", "them", "also",
		"like", "want", "need", "use", "using", "used", "make", "made", "get", "got", "know",
		"think", "see", "look", "go", "going", "come", "take", "give", "say", "said", "tell",
		"those", "these", "much", "many",
		"well", "still", "already", "even", "really", "actually", "right", "back",
		"something", "thing", "things", "work", "working", "works", "way", "ways", "time",
		"first", "last", "next", "new", "good", "best", "long", "great", "little",
		"help", "please", "sure", "okay", "thanks", "thank", "yes", "yeah",
	} {
		stopWords[w] = true
	}
}

// ExtractTopics returns up to ten most-frequent non-trivial words across all
// message contents, most frequent first. Ties keep first-encountered order.
func ExtractTopics(messages []conversation.Message) []string {
	counts := make(map[string]int)
	var order []string

	for _, msg := range messages {
		for _, w := range topicWordRe.FindAllString(strings.ToLower(msg.Content), -1) {
			if stopWords[w] {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topicLimit {
		order = order[:topicLimit]
	}
	return order
}
