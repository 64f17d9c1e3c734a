package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotPublishFlipsActiveBuffer(t *testing.T) {
	snap := NewSnapshot(4, 2)
	first := snap.Read()
	snap.EndProcessing()

	inactive := snap.Inactive()
	require.NotSame(t, first, inactive)
	inactive.PlayheadBeat = 42

	require.True(t, snap.Publish())
	require.Equal(t, 42.0, snap.Read().PlayheadBeat)
	snap.EndProcessing()
}

func TestSnapshotPublishBlockedWhileProcessing(t *testing.T) {
	snap := NewSnapshot(2, 1)
	_ = snap.Read() // processing count now 1, not released

	require.False(t, snap.Publish(), "publish must refuse while audio thread holds the buffer")
	snap.EndProcessing()
	require.True(t, snap.Publish())
}

func TestSnapshotPublishBlockedWhileRebuilding(t *testing.T) {
	snap := NewSnapshot(2, 1)
	snap.BeginRebuild()
	require.False(t, snap.Publish())
	snap.EndRebuild()
	require.True(t, snap.Publish())
}

// TestSnapshotConcurrentReadWrite stresses the guard under -race: one
// goroutine repeatedly publishes new snapshots while another repeatedly
// reads, and neither should ever observe or cause a data race.
func TestSnapshotConcurrentReadWrite(t *testing.T) {
	snap := NewSnapshot(8, 8)
	s := newTestSession(t, 8, 8)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				s.Transport.PlayheadBeat += 0.1
				s.FillFromSession(snap.Inactive())
				snap.Publish()
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				d := snap.Read()
				_ = d.PlayheadBeat
				snap.EndProcessing()
			}
		}
	}()

	time.Sleep(20 * time.Millisecond)
	close(stop)
	wg.Wait()
}
