package utils

import (
	"sync"
	"time"
)

// MatchDocument reports which plus words of rawQuery occur in the given
// document. If any minus word occurs there, the word list is empty. The
// second result is the document's status. An absent id is out of range.
func (s *SearchServer) MatchDocument(rawQuery string, documentID int) ([]string, DocumentStatus, error) {
	return s.MatchDocumentWithPolicy(Sequential, rawQuery, documentID)
}

// MatchDocumentWithPolicy is MatchDocument under an explicit execution
// policy. Parallel execution scans the minus and plus words on a worker
// pool; the result is identical to the sequential one.
func (s *SearchServer) MatchDocumentWithPolicy(policy ExecutionPolicy, rawQuery string, documentID int) ([]string, DocumentStatus, error) {
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.documents[documentID]
	if !exists {
		return nil, StatusActual, outOfRangef("document id %d does not exist", documentID)
	}
	parsed, err := s.parseQuery(rawQuery)
	if err != nil {
		return nil, StatusActual, err
	}

	var matched []string
	if policy == Parallel {
		matched = s.matchWordsParallel(parsed, documentID)
	} else {
		matched = s.matchWordsSequential(parsed, documentID)
	}

	s.log.Debug().
		Str("query", rawQuery).
		Int("id", documentID).
		Stringer("policy", policy).
		Int("words", len(matched)).
		Dur("took", time.Since(start)).
		Msg("match document")
	return matched, data.status, nil
}

func (s *SearchServer) wordInDocument(word string, documentID int) bool {
	_, ok := s.wordToDocumentFreqs[word][documentID]
	return ok
}

func (s *SearchServer) matchWordsSequential(parsed query, documentID int) []string {
	for _, word := range parsed.minusWords {
		if s.wordInDocument(word, documentID) {
			return []string{}
		}
	}
	matched := []string{}
	for _, word := range uniqueSortedPlusWords(parsed) {
		if s.wordInDocument(word, documentID) {
			matched = append(matched, word)
		}
	}
	return matched
}

func (s *SearchServer) matchWordsParallel(parsed query, documentID int) []string {
	var (
		mu       sync.Mutex
		hasMinus bool
	)
	forEachParallel(parsed.minusWords, func(word string) {
		if s.wordInDocument(word, documentID) {
			mu.Lock()
			hasMinus = true
			mu.Unlock()
		}
	})
	if hasMinus {
		return []string{}
	}

	plusWords := uniqueSortedPlusWords(parsed)
	present := make([]bool, len(plusWords))
	forEachIndexParallel(len(plusWords), func(i int) {
		present[i] = s.wordInDocument(plusWords[i], documentID)
	})
	matched := []string{}
	for i, word := range plusWords {
		if present[i] {
			matched = append(matched, word)
		}
	}
	return matched
}
