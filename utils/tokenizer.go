package utils

import "strings"

// splitIntoWords splits text on ASCII space into maximal non-empty runs.
// No case folding, no stemming; the index stores words exactly as given.
func splitIntoWords(text string) []string {
	var words []string
	for _, word := range strings.Split(text, " ") {
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// isValidWord reports whether a word is free of control characters.
func isValidWord(word string) bool {
	for _, r := range word {
		if r < 0x20 {
			return false
		}
	}
	return true
}

// makeUniqueNonEmptyWords collects the distinct non-empty strings from
// words, validating each one. Empty strings are silently dropped.
func makeUniqueNonEmptyWords(words []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if !isValidWord(word) {
			return nil, invalidArgumentf("stop word %q contains a control character", word)
		}
		set[word] = struct{}{}
	}
	return set, nil
}
