package utils

import "strings"

// query holds the parsed form of a raw query string. Plus words may repeat;
// retrieval deduplicates them before scoring.
type query struct {
	plusWords  []string
	minusWords []string
}

// queryWord is one classified query token.
type queryWord struct {
	text    string
	isMinus bool
	isStop  bool
}

// parseQueryWord classifies a single token. A leading '-' marks a minus
// word; the remainder must be a valid word that is non-empty and neither
// starts nor ends with '-'.
func (s *SearchServer) parseQueryWord(text string) (queryWord, error) {
	if text == "" {
		return queryWord{}, invalidArgumentf("query word is empty")
	}
	word := text
	isMinus := false
	if word[0] == '-' {
		isMinus = true
		word = word[1:]
	}
	if word == "" || word[0] == '-' || strings.HasSuffix(word, "-") || !isValidWord(word) {
		return queryWord{}, invalidArgumentf("query word %q is invalid", text)
	}
	return queryWord{text: word, isMinus: isMinus, isStop: s.isStopWord(word)}, nil
}

// parseQuery tokenizes a raw query and buckets tokens into plus and minus
// words, discarding stop words. An empty raw query is rejected.
func (s *SearchServer) parseQuery(raw string) (query, error) {
	words := splitIntoWords(raw)
	if len(words) == 0 {
		return query{}, invalidArgumentf("query is empty")
	}
	var result query
	for _, word := range words {
		qw, err := s.parseQueryWord(word)
		if err != nil {
			return query{}, err
		}
		if qw.isStop {
			continue
		}
		if qw.isMinus {
			result.minusWords = append(result.minusWords, qw.text)
		} else {
			result.plusWords = append(result.plusWords, qw.text)
		}
	}
	return result, nil
}

// uniqueSortedPlusWords deduplicates plus words into ascending lexical
// order. Scoring iterates this order so sequential and parallel runs
// reduce over the same term sequence.
func uniqueSortedPlusWords(q query) []string {
	return sortedUniqueStrings(q.plusWords)
}
