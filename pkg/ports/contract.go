package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// RunUnitSinkContract runs the standard compliance tests for any UnitSink.
// The sink must start empty.
func RunUnitSinkContract(t *testing.T, sink UnitSink) {
	ctx := context.Background()

	t.Run("Write and Read", func(t *testing.T) {
		err := sink.Write(ctx, "alpha.service", []byte("[Unit]\nDescription=Alpha\n"))
		require.NoError(t, err, "Write should not return error")

		got, err := sink.Read(ctx, "alpha.service")
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, "[Unit]\nDescription=Alpha\n", string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, sink.Write(ctx, "alpha.service", []byte("v2")))

		got, err := sink.Read(ctx, "alpha.service")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := sink.Read(ctx, "missing.service")
		assert.ErrorIs(t, err, model.ErrUnitNotFound)
	})

	t.Run("Concurrent Writes", func(t *testing.T) {
		names := []string{"c1.service", "c2.service", "c3.service", "c4.service"}
		var wg sync.WaitGroup
		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				assert.NoError(t, sink.Write(ctx, name, []byte(name)))
			}(name)
		}
		wg.Wait()

		for _, name := range names {
			got, err := sink.Read(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, name, string(got))
		}
	})

	t.Run("List", func(t *testing.T) {
		list, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"alpha.service",
			"c1.service",
			"c2.service",
			"c3.service",
			"c4.service",
		}, list)
	})
}
