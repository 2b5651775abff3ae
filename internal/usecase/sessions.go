package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/metrics"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/google/uuid"
)

const defaultSessionTTL = 10 * time.Minute

// SearchSessions хранит асинхронные поиски в памяти процесса.
// Каждая сессия — один поиск: прогресс можно опрашивать, поиск можно отменить.
type SearchSessions struct {
	uc     VisualSearchUC
	ttl    time.Duration
	logger logger.Logger

	mu       sync.RWMutex
	sessions map[string]*session

	baseCtx context.Context
	stop    context.CancelFunc
	running sync.WaitGroup
}

type session struct {
	mu        sync.Mutex
	snapshot  SessionSnapshot
	cancel    context.CancelFunc
	cancelled bool
}

func NewSearchSessions(uc VisualSearchUC, ttl time.Duration, logger logger.Logger) *SearchSessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	baseCtx, stop := context.WithCancel(context.Background())

	return &SearchSessions{
		uc:       uc,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*session),
		baseCtx:  baseCtx,
		stop:     stop,
	}
}

// StartSession проверяет загрузку и запускает поиск в фоне. Ошибка валидации возвращается сразу.
func (s *SearchSessions) StartSession(req *SearchReq) (string, error) {
	const op = "SearchSessions.StartSession"

	if req == nil {
		return "", e.Wrap(op, e.NewUploadError("Please select an image to search.", e.ErrNoImages))
	}
	if err := s.uc.ValidateUpload(req.Upload); err != nil {
		return "", e.Wrap(op, err)
	}

	if err := s.baseCtx.Err(); err != nil {
		return "", e.Wrap(op, err)
	}

	now := time.Now().UTC()
	ctx, cancel := context.WithCancel(s.baseCtx)
	sess := &session{
		snapshot: SessionSnapshot{
			ID:        uuid.NewString(),
			State:     domain.StateIdle,
			Status:    "Queued",
			CreatedAt: now,
			UpdatedAt: now,
		},
		cancel: cancel,
	}

	s.mu.Lock()
	s.sessions[sess.snapshot.ID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		defer cancel()

		res, err := s.uc.Search(ctx, req, ProgressFunc(sess.report))
		sess.finish(res, err)
	}()

	return sess.snapshot.ID, nil
}

// GetSession возвращает копию текущего состояния сессии.
func (s *SearchSessions) GetSession(id string) (*SessionSnapshot, error) {
	const op = "SearchSessions.GetSession"

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, e.Wrap(op, e.ErrSessionNotFound)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	snapshot := sess.snapshot
	return &snapshot, nil
}

// CancelSession отменяет поиск и удаляет сессию. Поздние результаты отменённого поиска отбрасываются.
func (s *SearchSessions) CancelSession(id string) error {
	const op = "SearchSessions.CancelSession"

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	s.mu.Unlock()

	if !ok {
		return e.Wrap(op, e.ErrSessionNotFound)
	}

	sess.mu.Lock()
	sess.cancelled = true
	if !sess.snapshot.State.IsTerminal() {
		sess.snapshot.State = domain.StateIdle
		sess.snapshot.Progress = 0
		sess.snapshot.Status = "Search cancelled"
		sess.snapshot.UpdatedAt = time.Now().UTC()
	}
	sess.mu.Unlock()

	sess.cancel()
	return nil
}

// Run удаляет завершённые сессии старше ttl, пока не отменён ctx.
func (s *SearchSessions) Run(ctx context.Context) {
	ticker := time.NewTicker(max(s.ttl/2, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictExpired(time.Now().UTC()); n > 0 {
				s.logger.Debugf("Evicted expired search sessions: %d", n)
			}
		}
	}
}

// Close отменяет все идущие поиски и ждёт их завершения.
func (s *SearchSessions) Close(ctx context.Context) error {
	s.stop()

	done := make(chan struct{})
	go func() {
		s.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SearchSessions) evictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := sess.snapshot.State.IsTerminal() && now.Sub(sess.snapshot.UpdatedAt) > s.ttl
		sess.mu.Unlock()

		if expired {
			delete(s.sessions, id)
			evicted++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))

	return evicted
}

func (sess *session) report(progress domain.SearchProgress) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cancelled {
		return
	}

	sess.snapshot.State = progress.State
	sess.snapshot.Progress = progress.Percent
	sess.snapshot.Status = progress.Status
	sess.snapshot.UpdatedAt = time.Now().UTC()
}

func (sess *session) finish(res *SearchRes, err error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cancelled {
		return
	}

	sess.snapshot.UpdatedAt = time.Now().UTC()
	if err != nil {
		sess.snapshot.State = domain.StateError
		sess.snapshot.Err = err
		return
	}

	sess.snapshot.State = domain.StateDone
	sess.snapshot.Progress = progressDone
	sess.snapshot.Status = res.Summary
	sess.snapshot.Result = res
}
