package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConcurrentIndexingIsSafe(t *testing.T) {
	svc := NewIndexingService(zap.NewNop(), t.TempDir())

	// Handlers index from many request goroutines at once; the lazy
	// open of each index must survive that.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			doc := map[string]interface{}{"email": fmt.Sprintf("user%d@x.com", n)}
			errs <- svc.IndexDocument("users", fmt.Sprintf("id-%d", n), doc)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	result, err := svc.SearchIndex("users", bleve.NewMatchAllQuery(), 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), result.Total)
}

func TestIndexReopensExisting(t *testing.T) {
	dir := t.TempDir()

	first := NewIndexingService(zap.NewNop(), dir)
	require.NoError(t, first.IndexDocument("users", "id-1", map[string]interface{}{"email": "a@x.com"}))
	require.NoError(t, first.indexes["users"].Close())

	// A fresh service over the same path opens the existing index
	// instead of failing to create it.
	second := NewIndexingService(zap.NewNop(), dir)
	result, err := second.SearchIndex("users", bleve.NewMatchAllQuery(), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}
