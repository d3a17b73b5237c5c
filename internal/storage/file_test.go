package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Veraticus/gxpassess/pkg/logger"
)

func TestFileKV_WatchReportsExternalWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	kv, err := NewFileKVWithLogger(dir, logger.NewMockLogger())
	require.NoError(t, err)
	s := NewStore(kv, WithLogger(logger.NewMockLogger()))

	changed := make(chan string, 16)
	cancelSub := s.Subscribe(func(key string) {
		select {
		case changed <- key:
		default:
		}
	})
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Another process writes a value directly into the directory. Keep
	// writing until the watcher has been registered and reports it.
	target := filepath.Join(dir, "assessmentResults__abc.json")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got string
wait:
	for {
		select {
		case got = <-changed:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(target, []byte(`{}`), 0600))
		case <-deadline:
			t.Fatal("watcher did not report the external write")
		}
	}
	assert.Equal(t, "assessmentResults:abc", got)

	cancel()
	require.NoError(t, <-done)
}
