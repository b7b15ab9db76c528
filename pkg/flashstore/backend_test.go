package flashstore_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// testBackend runs the behaviour every toast.Backend must share.
// expire makes entries saved with a one second TTL expire.
func testBackend(t *testing.T, b toast.Backend, expire func()) {
	t.Helper()
	ctx := context.Background()

	t.Run("pop returns saved data once", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "toast:flash:a", []byte(`[{"kind":"info","text":"hi"}]`), time.Minute))

		got, err := b.Pop(ctx, "toast:flash:a")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"kind":"info","text":"hi"}]`), got)

		got, err = b.Pop(ctx, "toast:flash:a")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "toast:flash:b", []byte("first"), time.Minute))
		require.NoError(t, b.Save(ctx, "toast:flash:b", []byte("second"), time.Minute))

		got, err := b.Pop(ctx, "toast:flash:b")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "toast:flash:c", []byte("x"), time.Minute))
		require.NoError(t, b.Delete(ctx, "toast:flash:c"))
		require.NoError(t, b.Delete(ctx, "toast:flash:missing"))

		got, err := b.Pop(ctx, "toast:flash:c")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("concurrent pop returns data once", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "toast:flash:race", []byte("x"), time.Minute))

		var (
			wg   sync.WaitGroup
			hits atomic.Int32
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := b.Pop(ctx, "toast:flash:race")
				assert.NoError(t, err)
				if got != nil {
					hits.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("missing key", func(t *testing.T) {
		got, err := b.Pop(ctx, "toast:flash:nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired entry", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "toast:flash:d", []byte("x"), time.Second))
		expire()

		got, err := b.Pop(ctx, "toast:flash:d")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
