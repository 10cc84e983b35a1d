package session

import "strings"

// Phrases that flag a message for crisis review. Matching is substring-based
// on the lowercased input; the flag is advisory and never blocks a turn.
var crisisPhrases = []string{
	"suicide",
	"suicidal",
	"kill myself",
	"end my life",
	"self-harm",
	"self harm",
	"hurt myself",
	"want to die",
	"no reason to live",
	"overdose",
}

func detectCrisis(content string) bool {
	content = strings.ToLower(content)
	for _, phrase := range crisisPhrases {
		if strings.Contains(content, phrase) {
			return true
		}
	}
	return false
}
