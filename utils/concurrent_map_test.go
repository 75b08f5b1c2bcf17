package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentMapAddAndDrain(t *testing.T) {
	m := newConcurrentMap(12)
	m.Add(1, 0.5)
	m.Add(1, 0.25)
	m.Add(13, 1.0) // same shard as 1
	m.Add(2, 2.0)

	values := m.BuildOrdinaryMap()
	assert.InDelta(t, 0.75, values[1], Epsilon)
	assert.InDelta(t, 1.0, values[13], Epsilon)
	assert.InDelta(t, 2.0, values[2], Epsilon)
	assert.Len(t, values, 3)
}

func TestConcurrentMapErase(t *testing.T) {
	m := newConcurrentMap(4)
	m.Add(1, 1.0)
	m.Add(2, 1.0)
	m.Erase(1)
	m.Erase(99) // absent key is a no-op

	values := m.BuildOrdinaryMap()
	assert.NotContains(t, values, 1)
	assert.Contains(t, values, 2)
}

func TestConcurrentMapSingleShard(t *testing.T) {
	m := newConcurrentMap(1)
	m.Add(10, 1.0)
	m.Add(11, 2.0)
	assert.Len(t, m.BuildOrdinaryMap(), 2)
}

func TestConcurrentMapParallelAdds(t *testing.T) {
	const (
		goroutines = 16
		keys       = 100
		rounds     = 50
	)
	m := newConcurrentMap(12)

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				for key := 0; key < keys; key++ {
					m.Add(key, 1.0)
				}
			}
		}()
	}
	wg.Wait()

	values := m.BuildOrdinaryMap()
	assert.Len(t, values, keys)
	for key := 0; key < keys; key++ {
		assert.InDelta(t, float64(goroutines*rounds), values[key], Epsilon)
	}
}
