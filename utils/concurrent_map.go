package utils

import "sync"

// defaultShardCount is the shard count of the relevance accumulator used
// when no override is configured.
const defaultShardCount = 12

// concurrentMap is a sharded map from document id to an accumulated
// float64. Each shard carries its own lock, so concurrent Add calls on
// different shards never contend. BuildOrdinaryMap is the only operation
// allowed to observe more than one shard.
type concurrentMap struct {
	shards []mapShard
}

type mapShard struct {
	mu     sync.Mutex
	values map[int]float64
}

// newConcurrentMap creates an accumulator with the given shard count.
func newConcurrentMap(shardCount int) *concurrentMap {
	if shardCount < 1 {
		shardCount = 1
	}
	m := &concurrentMap{shards: make([]mapShard, shardCount)}
	for i := range m.shards {
		m.shards[i].values = make(map[int]float64)
	}
	return m
}

// shardFor picks the shard for a key. Document ids are non-negative, so a
// plain modulus suffices.
func (m *concurrentMap) shardFor(key int) *mapShard {
	return &m.shards[key%len(m.shards)]
}

// Add accumulates delta into the value stored under key.
func (m *concurrentMap) Add(key int, delta float64) {
	shard := m.shardFor(key)
	shard.mu.Lock()
	shard.values[key] += delta
	shard.mu.Unlock()
}

// Erase removes key. Erasing an absent key is a no-op.
func (m *concurrentMap) Erase(key int) {
	shard := m.shardFor(key)
	shard.mu.Lock()
	delete(shard.values, key)
	shard.mu.Unlock()
}

// BuildOrdinaryMap locks the shards in index order and merges them into a
// plain map.
func (m *concurrentMap) BuildOrdinaryMap() map[int]float64 {
	result := make(map[int]float64)
	for i := range m.shards {
		shard := &m.shards[i]
		shard.mu.Lock()
		for key, value := range shard.values {
			result[key] = value
		}
		shard.mu.Unlock()
	}
	return result
}
