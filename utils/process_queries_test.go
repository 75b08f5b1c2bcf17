package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessQueries(t *testing.T) {
	server := NewSearchServer()
	require.NoError(t, server.AddDocument(1, "curly cat curly tail", StatusActual, []int{7, 2, 7}))
	require.NoError(t, server.AddDocument(2, "curly dog and fancy collar", StatusActual, []int{1, 2, 3}))
	require.NoError(t, server.AddDocument(3, "big cat fancy collar", StatusActual, []int{1, 2, 8}))

	queries := []string{"curly", "big", "unicorn"}
	results, err := ProcessQueries(server, queries)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Len(t, results[0], 2, "curly matches documents 1 and 2")
	assert.Len(t, results[1], 1, "big matches document 3")
	assert.Empty(t, results[2])
}

func TestProcessQueriesOrderIsStable(t *testing.T) {
	server := NewSearchServer()
	for i := range 20 {
		require.NoError(t, server.AddDocument(i, fmt.Sprintf("word%d shared", i), StatusActual, []int{i}))
	}
	queries := make([]string, 20)
	for i := range queries {
		queries[i] = fmt.Sprintf("word%d", i)
	}

	results, err := ProcessQueries(server, queries)
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i, docs := range results {
		require.Len(t, docs, 1, "query %d", i)
		assert.Equal(t, i, docs[0].ID)
	}
}

func TestProcessQueriesPropagatesErrors(t *testing.T) {
	server := NewSearchServer()
	require.NoError(t, server.AddDocument(1, "cat", StatusActual, nil))

	_, err := ProcessQueries(server, []string{"cat", "--bad"})
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestProcessQueriesJoined(t *testing.T) {
	server := NewSearchServer()
	require.NoError(t, server.AddDocument(1, "curly cat", StatusActual, []int{1}))
	require.NoError(t, server.AddDocument(2, "curly dog", StatusActual, []int{2}))
	require.NoError(t, server.AddDocument(3, "big horse", StatusActual, []int{3}))

	joined, err := ProcessQueriesJoined(server, []string{"curly", "horse"})
	require.NoError(t, err)
	require.Len(t, joined, 3)
	// Per-query blocks keep their order: both curly documents, then horse.
	assert.Equal(t, 3, joined[2].ID)
}
