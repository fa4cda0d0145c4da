package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rssmerge/domain"
)

func TestStorePublishOverwrites(t *testing.T) {
	s := NewStore()
	src := domain.Source("https://a.example/rss")

	_, ok := s.Get(src)
	assert.False(t, ok)

	s.Publish(src, domain.Success{Channel: domain.NewChannel(nil, nil, nil, nil)})
	s.Publish(src, domain.Failure{Reason: "down"})

	got, ok := s.Get(src)
	require.True(t, ok)
	assert.Equal(t, domain.Failure{Reason: "down"}, got)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Publish("a", domain.Failure{Reason: "x"})

	snap := s.Snapshot()
	snap["b"] = domain.Failure{Reason: "y"}

	_, ok := s.Get("b")
	assert.False(t, ok)
	assert.Len(t, s.Snapshot(), 1)
}

func TestStoreConcurrentWritersOnDistinctKeys(t *testing.T) {
	s := NewStore()
	const rounds = 500

	var wg sync.WaitGroup
	for _, key := range []domain.Source{"a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				s.Publish(key, domain.Failure{Reason: fmt.Sprintf("%s-%d", key, i)})
			}
		}()
	}
	// readers run alongside the writers
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, domain.Failure{Reason: fmt.Sprintf("a-%d", rounds-1)}, snap["a"])
	assert.Equal(t, domain.Failure{Reason: fmt.Sprintf("b-%d", rounds-1)}, snap["b"])
}
