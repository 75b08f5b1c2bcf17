package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dedupeCorpus builds the nine-document corpus where several documents
// carry the same word set once stop words are removed.
func dedupeCorpus(t *testing.T) *SearchServer {
	t.Helper()
	server, err := NewSearchServerFromText("and with")
	require.NoError(t, err)

	docs := []struct {
		id   int
		text string
	}{
		{1, "funny pet and nasty rat"},
		{2, "funny pet with curly hair"},
		{3, "funny pet with curly hair"},             // exact duplicate of 2
		{4, "funny pet and curly hair"},              // differs only in stop words
		{5, "funny funny pet and nasty nasty rat"},   // same word set as 1
		{6, "funny pet and not very nasty rat"},      // new words, kept
		{7, "very nasty rat and not very funny pet"}, // same word set as 6
		{8, "pet with rat and rat and rat"},          // subset, kept
		{9, "nasty rat with curly hair"},             // mixed words, kept
	}
	for _, doc := range docs {
		require.NoError(t, server.AddDocument(doc.id, doc.text, StatusActual, []int{1, 2}))
	}
	return server
}

func TestRemoveDuplicates(t *testing.T) {
	server := dedupeCorpus(t)
	require.Equal(t, 9, server.DocumentCount())

	var removed []int
	RemoveDuplicates(server, func(id int) {
		removed = append(removed, id)
	})

	assert.Equal(t, []int{3, 4, 5, 7}, removed)
	assert.Equal(t, 5, server.DocumentCount())

	var surviving []int
	for id := range server.IterIDs() {
		surviving = append(surviving, id)
	}
	assert.Equal(t, []int{1, 2, 6, 8, 9}, surviving)
}

func TestRemoveDuplicatesIsIdempotent(t *testing.T) {
	server := dedupeCorpus(t)
	RemoveDuplicates(server, nil)
	countAfterFirst := server.DocumentCount()

	called := false
	RemoveDuplicates(server, func(int) { called = true })
	assert.False(t, called, "second pass must remove nothing")
	assert.Equal(t, countAfterFirst, server.DocumentCount())
}

func TestRemoveDuplicatesKeepsSmallestID(t *testing.T) {
	server := NewSearchServer()
	require.NoError(t, server.AddDocument(10, "cat city", StatusActual, nil))
	require.NoError(t, server.AddDocument(4, "city cat", StatusActual, nil))

	RemoveDuplicates(server, nil)

	var surviving []int
	for id := range server.IterIDs() {
		surviving = append(surviving, id)
	}
	assert.Equal(t, []int{4}, surviving)
}
