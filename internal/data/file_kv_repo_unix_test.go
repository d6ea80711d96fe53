//go:build unix

package data

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Separate instances hold separate mutexes, so only the file lock keeps their writes apart,
// the same as two CLI processes sharing a state file.
func TestFileKVRepo_SeparateWritersKeepEveryKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo := NewFileKVRepo(path)
			for i := range perWriter {
				errs <- repo.Set(ctx, fmt.Sprintf("profile:w%d:key%d", w, i), "v")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	repo := NewFileKVRepo(path)
	for w := range writers {
		for i := range perWriter {
			_, ok, err := repo.Get(ctx, fmt.Sprintf("profile:w%d:key%d", w, i))
			require.NoError(t, err)
			assert.True(t, ok, "writer %d key %d lost", w, i)
		}
	}
}
