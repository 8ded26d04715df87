package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queuecare/internal/load"
	"queuecare/internal/models"
	"queuecare/internal/storage"
)

type staticLoads struct {
	viewer models.Viewer
	loads  []load.DepartmentLoad
	err    error
}

func (s *staticLoads) DepartmentLoads(ctx context.Context, viewer models.Viewer) ([]load.DepartmentLoad, error) {
	s.viewer = viewer
	return s.loads, s.err
}

func TestResetTicketNumbers(t *testing.T) {
	seq := &storage.MemorySequencer{}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := seq.Next(ctx)
		require.NoError(t, err)
	}

	ResetTicketNumbers(seq)()

	n, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLogQueueStats(t *testing.T) {
	source := &staticLoads{loads: []load.DepartmentLoad{{Code: "general", CurrentLoad: 2}, {Code: "cardiology", CurrentLoad: 1}}}
	LogQueueStats(source)()
	assert.True(t, source.viewer.IsStaff)
	assert.Equal(t, "general=2, cardiology=1", formatLoads(source.loads))

	LogQueueStats(&staticLoads{err: errors.New("db down")})()
}

func TestInitScheduler(t *testing.T) {
	c, err := InitScheduler(&storage.MemorySequencer{}, &staticLoads{}, "0 0 0 * * *", "0 */5 * * * *")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 2)
	c.Stop()

	_, err = InitScheduler(&storage.MemorySequencer{}, &staticLoads{}, "not a spec", "0 */5 * * * *")
	assert.Error(t, err)
}
