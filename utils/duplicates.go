package utils

import "strings"

// RemoveDuplicates removes every document whose word set (ignoring
// frequencies and order) repeats the word set of a document with a smaller
// id. Each removed id is reported through onDuplicate before removal; a
// nil observer is allowed.
//
// Running it twice removes nothing the second time.
func RemoveDuplicates(server *SearchServer, onDuplicate func(id int)) {
	seen := make(map[string]struct{})
	var duplicates []int

	for id := range server.IterIDs() {
		freqs := server.WordFrequencies(id)
		words := make([]string, 0, len(freqs))
		for word := range freqs {
			words = append(words, word)
		}
		// The word set is keyed by its sorted members; words cannot contain
		// a space, so the join is unambiguous.
		key := strings.Join(sortedUniqueStrings(words), " ")
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, id)
			continue
		}
		seen[key] = struct{}{}
	}

	for _, id := range duplicates {
		if onDuplicate != nil {
			onDuplicate(id)
		}
		server.log.Info().Int("id", id).Msg("duplicate document removed")
		server.RemoveDocument(id)
	}
}
