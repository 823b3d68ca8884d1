package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trufnetwork/notary/notary"
)

type fakeAnchorer struct {
	mu   sync.Mutex
	docs []string
	fail bool
}

func (f *fakeAnchorer) Notarize(_ context.Context, document []byte) notary.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, string(document))
	if f.fail {
		return notary.Result{
			Status:  notary.StatusFailed,
			Failure: &notary.Failure{Kind: notary.KindConnectivity, Reason: "node unreachable"},
		}
	}
	return notary.Result{
		Status:      notary.StatusConfirmed,
		Fingerprint: notary.DeriveFingerprint(document),
		TxHash:      common.HexToHash("0x01"),
	}
}

func (f *fakeAnchorer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRunOnceAnchorsOnlyChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	writeDoc(t, path, "v1")
	anchorer := &fakeAnchorer{}
	w := NewWatcher(NewWatcherParams{Path: path, Anchorer: anchorer})
	ctx := context.Background()

	out, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.False(t, out.Skipped)
	assert.True(t, out.Result.OK())

	out, err = w.RunOnce(ctx)
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Equal(t, 1, anchorer.calls())

	writeDoc(t, path, "v2")
	out, err = w.RunOnce(ctx)
	require.NoError(t, err)
	assert.False(t, out.Skipped)
	assert.Equal(t, []string{"v1", "v2"}, anchorer.docs)

	last, ok := w.LastAnchored()
	assert.True(t, ok)
	assert.Equal(t, notary.DeriveFingerprint([]byte("v2")), last)
}

func TestRunOnceRetriesAfterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	writeDoc(t, path, "v1")
	anchorer := &fakeAnchorer{fail: true}
	w := NewWatcher(NewWatcherParams{Path: path, Anchorer: anchorer})

	out, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Result.OK())
	_, ok := w.LastAnchored()
	assert.False(t, ok)

	anchorer.mu.Lock()
	anchorer.fail = false
	anchorer.mu.Unlock()

	out, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Result.OK())
	assert.Equal(t, 2, anchorer.calls())
}

func TestRunOnceMissingFile(t *testing.T) {
	w := NewWatcher(NewWatcherParams{Path: filepath.Join(t.TempDir(), "missing"), Anchorer: &fakeAnchorer{}})
	_, err := w.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	w := NewWatcher(NewWatcherParams{Path: "unused", Anchorer: &fakeAnchorer{}})
	assert.Error(t, w.Start(context.Background(), "every now and then"))
}

func TestStartStop(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := NewWatcher(NewWatcherParams{Path: "unused", Anchorer: &fakeAnchorer{}, Logger: zap.New(core)})
	require.NoError(t, w.Start(context.Background(), "0 0 1 1 *"))
	w.Stop()

	started := logs.FilterMessage("watch scheduler started").All()
	require.Len(t, started, 1)
	next, ok := started[0].ContextMap()["next_run"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.January, next.Month())
	assert.Equal(t, 1, next.Day())
	assert.True(t, next.After(time.Now()))
}
