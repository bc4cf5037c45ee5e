package service

import (
	"errors"
	"sync"

	"cardbot/internal/domain"

	"go.uber.org/zap"
)

// ErrSyncerClosed is recorded when a snapshot arrives after Close
var ErrSyncerClosed = errors.New("syncer closed")

// CollectionWriter persists a full card collection
type CollectionWriter interface {
	WriteCollection(cards []domain.Card) error
}

// Syncer writes collection snapshots in the background. Callers never wait
// for the write; only the latest pending snapshot is written.
type Syncer struct {
	writer CollectionWriter
	logger *zap.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	pending []domain.Card
	dirty   bool
	writing bool
	closed  bool
	lastErr error

	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSyncer starts the background writer. Call Close to stop it.
func NewSyncer(writer CollectionWriter, logger *zap.Logger) *Syncer {
	s := &Syncer{
		writer: writer,
		logger: logger,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.idle = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// Sync schedules cards to be written
func (s *Syncer) Sync(cards []domain.Card) {
	s.mu.Lock()
	if s.closed {
		s.lastErr = ErrSyncerClosed
		s.mu.Unlock()
		s.logger.Error("Dropping cards written after shutdown", zap.Int("cards", len(cards)))
		return
	}
	s.pending = domain.CloneCards(cards)
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every scheduled snapshot has been written
func (s *Syncer) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.dirty || s.writing {
		select {
		case <-s.done:
			// Stopped writers never become idle on their own
			return
		default:
		}
		s.idle.Wait()
	}
}

// LastError returns the error of the most recent write, nil if it succeeded
func (s *Syncer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close writes what is pending and stops the background goroutine
func (s *Syncer) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stop)
		<-s.done
	})
}

func (s *Syncer) run() {
	defer func() {
		s.mu.Lock()
		close(s.done)
		s.idle.Broadcast()
		s.mu.Unlock()
	}()

	for {
		select {
		case <-s.stop:
			s.drain()
			return
		case <-s.wake:
			s.drain()
		}
	}
}

func (s *Syncer) drain() {
	for {
		s.mu.Lock()
		if !s.dirty {
			s.writing = false
			s.idle.Broadcast()
			s.mu.Unlock()
			return
		}
		cards := s.pending
		s.pending = nil
		s.dirty = false
		s.writing = true
		s.mu.Unlock()

		err := s.writer.WriteCollection(cards)
		if err != nil {
			s.logger.Error("Failed to persist cards",
				zap.Int("cards", len(cards)),
				zap.Error(err),
			)
		}

		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}
}
