package utils

import (
	"iter"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// SearchServer is an in-memory document search engine. Documents are
// tokenized on whitespace, stripped of stop words, and stored in a pair of
// transposed frequency maps; retrieval ranks documents by TF-IDF.
//
// Ingest calls (AddDocument, RemoveDocument, SetStopWords) take an
// exclusive lock; queries share a read lock, so any number of concurrent
// queries may run against a quiescent corpus.
type SearchServer struct {
	mu sync.RWMutex

	stopWords map[string]struct{}

	// wordToDocumentFreqs and documentToWordFreqs are mutual transposes:
	// word -> document id -> term frequency, and the reverse.
	wordToDocumentFreqs map[string]map[int]float64
	documentToWordFreqs map[int]map[string]float64

	documents   map[int]documentData
	documentIDs []int // ascending
	// insertionOrder records ids in AddDocument order. Removals do not
	// rewrite it, so DocumentIDAt can return an id that is no longer live.
	insertionOrder []int

	shardCount int
	log        zerolog.Logger
	metrics    *Metrics
}

// Option adjusts a SearchServer at construction time.
type Option func(*SearchServer)

// WithShardCount sets the shard count of the relevance accumulator used by
// parallel retrieval.
func WithShardCount(n int) Option {
	return func(s *SearchServer) {
		if n > 0 {
			s.shardCount = n
		}
	}
}

// WithLogger attaches a structured logger. The default discards events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *SearchServer) { s.log = log }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(s *SearchServer) { s.metrics = m }
}

// NewSearchServer creates an engine with no stop words.
func NewSearchServer(opts ...Option) *SearchServer {
	s := &SearchServer{
		stopWords:           make(map[string]struct{}),
		wordToDocumentFreqs: make(map[string]map[int]float64),
		documentToWordFreqs: make(map[int]map[string]float64),
		documents:           make(map[int]documentData),
		shardCount:          defaultShardCount,
		log:                 zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSearchServerFromText creates an engine whose stop words are the
// whitespace-separated words of text.
func NewSearchServerFromText(text string, opts ...Option) (*SearchServer, error) {
	return NewSearchServerFromWords(splitIntoWords(text), opts...)
}

// NewSearchServerFromWords creates an engine with the given stop words.
// Empty strings are dropped; a word with a control character is rejected.
func NewSearchServerFromWords(words []string, opts ...Option) (*SearchServer, error) {
	set, err := makeUniqueNonEmptyWords(words)
	if err != nil {
		return nil, err
	}
	s := NewSearchServer(opts...)
	s.stopWords = set
	return s, nil
}

// SetStopWords adds stop words to the set. Words already indexed are not
// retroactively removed; only documents added afterwards see the change.
func (s *SearchServer) SetStopWords(words ...string) error {
	set, err := makeUniqueNonEmptyWords(words)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for word := range set {
		s.stopWords[word] = struct{}{}
	}
	return nil
}

// AddDocument tokenizes text, drops stop words, and records the document
// under id with the given status and the truncated mean of ratings. The id
// must be non-negative and not currently present.
func (s *SearchServer) AddDocument(id int, text string, status DocumentStatus, ratings []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 {
		return invalidArgumentf("document id %d is negative", id)
	}
	if _, exists := s.documents[id]; exists {
		return invalidArgumentf("document id %d already exists", id)
	}
	words, err := s.splitIntoWordsNoStop(text)
	if err != nil {
		return err
	}

	wordFreqs := make(map[string]float64, len(words))
	if len(words) > 0 {
		invWordCount := 1.0 / float64(len(words))
		for _, word := range words {
			if s.wordToDocumentFreqs[word] == nil {
				s.wordToDocumentFreqs[word] = make(map[int]float64)
			}
			s.wordToDocumentFreqs[word][id] += invWordCount
			wordFreqs[word] += invWordCount
		}
	}
	s.documentToWordFreqs[id] = wordFreqs
	s.documents[id] = documentData{rating: computeAverageRating(ratings), status: status}
	s.insertIDSorted(id)
	s.insertionOrder = append(s.insertionOrder, id)

	if s.metrics != nil {
		s.metrics.documentAdded()
	}
	s.log.Debug().Int("id", id).Int("words", len(wordFreqs)).Stringer("status", status).Msg("document added")
	return nil
}

// RemoveDocument evicts id from the index. Removing an absent id is a
// no-op. The insertion order sequence is left untouched.
func (s *SearchServer) RemoveDocument(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[id]; !exists {
		return
	}
	for word := range s.documentToWordFreqs[id] {
		delete(s.wordToDocumentFreqs[word], id)
		if len(s.wordToDocumentFreqs[word]) == 0 {
			delete(s.wordToDocumentFreqs, word)
		}
	}
	delete(s.documentToWordFreqs, id)
	delete(s.documents, id)
	if i := sort.SearchInts(s.documentIDs, id); i < len(s.documentIDs) && s.documentIDs[i] == id {
		s.documentIDs = append(s.documentIDs[:i], s.documentIDs[i+1:]...)
	}

	if s.metrics != nil {
		s.metrics.documentRemoved()
	}
	s.log.Debug().Int("id", id).Msg("document removed")
}

// DocumentCount returns the number of live documents.
func (s *SearchServer) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// DocumentIDAt returns the id accepted at position index of the insertion
// order. The sequence is not compacted on removal, so the returned id may
// no longer be live.
func (s *SearchServer) DocumentIDAt(index int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.insertionOrder) {
		return 0, outOfRangef("document index %d, have %d", index, len(s.insertionOrder))
	}
	return s.insertionOrder[index], nil
}

// WordFrequencies returns the term-frequency map of a document, or an
// empty map if the id is absent. The map is a view owned by the engine; it
// is invalidated by the next AddDocument, RemoveDocument, or SetStopWords.
func (s *SearchServer) WordFrequencies(id int) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if freqs, ok := s.documentToWordFreqs[id]; ok {
		return freqs
	}
	return map[string]float64{}
}

// IterIDs enumerates the live document ids in ascending order.
func (s *SearchServer) IterIDs() iter.Seq[int] {
	return func(yield func(int) bool) {
		s.mu.RLock()
		ids := make([]int, len(s.documentIDs))
		copy(ids, s.documentIDs)
		s.mu.RUnlock()
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

func (s *SearchServer) isStopWord(word string) bool {
	_, ok := s.stopWords[word]
	return ok
}

// splitIntoWordsNoStop tokenizes text, validates every word, and drops the
// stop words.
func (s *SearchServer) splitIntoWordsNoStop(text string) ([]string, error) {
	var words []string
	for _, word := range splitIntoWords(text) {
		if !isValidWord(word) {
			return nil, invalidArgumentf("word %q contains a control character", word)
		}
		if !s.isStopWord(word) {
			words = append(words, word)
		}
	}
	return words, nil
}

// insertIDSorted keeps documentIDs ascending.
func (s *SearchServer) insertIDSorted(id int) {
	i := sort.SearchInts(s.documentIDs, id)
	s.documentIDs = append(s.documentIDs, 0)
	copy(s.documentIDs[i+1:], s.documentIDs[i:])
	s.documentIDs[i] = id
}

// computeWordIDF is the inverse document frequency of an indexed word.
// The caller holds at least the read lock and guarantees the word exists.
func (s *SearchServer) computeWordIDF(word string) float64 {
	return math.Log(float64(len(s.documents)) / float64(len(s.wordToDocumentFreqs[word])))
}

// computeAverageRating truncates the arithmetic mean of ratings toward
// zero; an empty list averages to 0.
func computeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}

// sortedUniqueStrings returns the distinct members of words in ascending
// lexical order.
func sortedUniqueStrings(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	out := make([]string, len(words))
	copy(out, words)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
