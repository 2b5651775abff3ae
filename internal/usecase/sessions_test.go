package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_CompletesSearch(t *testing.T) {
	env := newTestEnv()
	sessions := NewSearchSessions(env.uc, time.Minute, logger.NewNop())
	t.Cleanup(func() { _ = sessions.Close(context.Background()) })

	id, err := sessions.StartSession(NewSearchReq(pngUpload("query"), "", 0))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Eventually(t, func() bool {
		snap, err := sessions.GetSession(id)
		return err == nil && snap.State == domain.StateDone
	}, 2*time.Second, 10*time.Millisecond)

	snap, err := sessions.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, float64(100), snap.Progress)
	require.NotNil(t, snap.Result)
	assert.Len(t, snap.Result.Results, 2)
	assert.Equal(t, "Found 2 similar products", snap.Status)
	assert.NoError(t, snap.Err)
}

func TestSessions_RejectsInvalidUploadSynchronously(t *testing.T) {
	env := newTestEnv()
	sessions := NewSearchSessions(env.uc, time.Minute, logger.NewNop())

	upload := domain.NewUpload([]byte("x"), "image/gif", 1, "x.gif")
	_, err := sessions.StartSession(NewSearchReq(upload, "", 0))

	assert.ErrorIs(t, err, e.ErrInvalidUpload)
	assert.Zero(t, env.extractor.available.Load())
}

func TestSessions_ReportsError(t *testing.T) {
	env := newTestEnv()
	env.extractor.availableErr = e.ErrModelUnavailable
	sessions := NewSearchSessions(env.uc, time.Minute, logger.NewNop())

	id, err := sessions.StartSession(NewSearchReq(pngUpload("query"), "", 0))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := sessions.GetSession(id)
		return err == nil && snap.State == domain.StateError
	}, 2*time.Second, 10*time.Millisecond)

	snap, _ := sessions.GetSession(id)
	assert.ErrorIs(t, snap.Err, e.ErrModelUnavailable)
	assert.Nil(t, snap.Result)
}

func TestSessions_CancelDiscardsResult(t *testing.T) {
	env := newTestEnv()
	started := make(chan struct{})
	stopped := make(chan struct{})
	env.fetcher.hook = func(ctx context.Context, ref domain.ImageRef) error {
		if ref.URL != "http://img/p1" {
			return nil
		}
		close(started)
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	}

	sessions := NewSearchSessions(env.uc, time.Minute, logger.NewNop())
	id, err := sessions.StartSession(NewSearchReq(pngUpload("query"), "", 0))
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("scan did not start")
	}

	require.NoError(t, sessions.CancelSession(id))

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("search was not cancelled")
	}

	_, err = sessions.GetSession(id)
	assert.ErrorIs(t, err, e.ErrSessionNotFound)
	assert.ErrorIs(t, sessions.CancelSession(id), e.ErrSessionNotFound)

	require.NoError(t, sessions.Close(context.Background()))
}

func TestSessions_UnknownID(t *testing.T) {
	sessions := NewSearchSessions(newTestEnv().uc, time.Minute, logger.NewNop())

	_, err := sessions.GetSession("missing")
	assert.ErrorIs(t, err, e.ErrSessionNotFound)
}

func TestSessions_EvictsExpired(t *testing.T) {
	env := newTestEnv()
	sessions := NewSearchSessions(env.uc, time.Minute, logger.NewNop())

	id, err := sessions.StartSession(NewSearchReq(pngUpload("query"), "", 0))
	require.NoError(t, err)
	require.NoError(t, sessions.Close(context.Background()))

	assert.Zero(t, sessions.evictExpired(time.Now().UTC()))
	assert.Equal(t, 1, sessions.evictExpired(time.Now().UTC().Add(2*time.Minute)))

	_, err = sessions.GetSession(id)
	assert.ErrorIs(t, err, e.ErrSessionNotFound)
}

func TestSessions_StartAfterClose(t *testing.T) {
	sessions := NewSearchSessions(newTestEnv().uc, time.Minute, logger.NewNop())
	require.NoError(t, sessions.Close(context.Background()))

	_, err := sessions.StartSession(NewSearchReq(pngUpload("query"), "", 0))
	assert.ErrorIs(t, err, context.Canceled)
}
