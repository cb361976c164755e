package giiker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/mlowell/giiker_trigger/internal/ble"
	"github.com/mlowell/giiker_trigger/internal/protocol"
	"github.com/mlowell/giiker_trigger/internal/storage"
	"github.com/mlowell/giiker_trigger/internal/trigger"
	"github.com/mlowell/giiker_trigger/internal/uart"
)

// ConnState is the connection lifecycle state of a session's BLE client.
type ConnState = ble.ConnState

// Connection lifecycle states.
const (
	StateIdle       = ble.StateIdle
	StateScanning   = ble.StateScanning
	StateFound      = ble.StateFound
	StateConnecting = ble.StateConnecting
	StateConnected  = ble.StateConnected
	StateFailed     = ble.StateFailed
)

// Session owns the cube connection, the decode pipeline, the solved trigger
// and the optional solve log. Create one with New, register callbacks, then
// call Run.
type Session struct {
	cfg     *config
	log     *logrus.Logger
	client  *ble.Client
	trigger *trigger.Trigger
	db      *storage.DB
	solves  *storage.SolveRepository

	mu        sync.RWMutex
	lastMove  Move
	hasMove   bool
	moveCount int // moves since the previous solve
	solved    int
	onMove    func(Move)
	onSolved  func()
	onState   func(ConnState)
}

// Status is a point-in-time snapshot of a session, for display.
type Status struct {
	Peer        string
	State       ConnState
	LastMove    Move
	HasMove     bool
	MoveCount   int
	Solves      int
	PulseActive bool
}

// New creates a session. BLE scanning does not start until Run.
func New(opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient(cfg.address, cfg.connectTimeout, cfg.logger)
	if err != nil {
		return nil, err
	}

	pulser := cfg.pulser
	if pulser == nil && cfg.gpioPin >= 0 {
		pulser, err = trigger.NewGPIOPin(cfg.gpioPin)
		if err != nil {
			return nil, err
		}
	}
	if pulser == nil {
		pulser = trigger.NopPulser{}
	}

	s := &Session{
		cfg:     cfg,
		log:     cfg.logger,
		client:  client,
		trigger: trigger.New(pulser, cfg.hold, cfg.logger),
	}

	if cfg.solveLogPath != "" {
		db, err := storage.Open(cfg.solveLogPath)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.solves = storage.NewSolveRepository(db)
	}

	client.SetNotifyHandler(s.handleNotification)
	client.SetStateHandler(s.handleStateChange)

	return s, nil
}

// OnMove sets a callback fired for each decoded last move.
func (s *Session) OnMove(cb func(Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// OnSolved sets a callback fired once per qualifying solved notification,
// after the output trigger has been signalled.
func (s *Session) OnSolved(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = cb
}

// OnStateChange sets a callback for connection state transitions.
func (s *Session) OnStateChange(cb func(ConnState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = cb
}

// Status returns a snapshot of the session.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Peer:        s.client.Target(),
		State:       s.client.State(),
		LastMove:    s.lastMove,
		HasMove:     s.hasMove,
		MoveCount:   s.moveCount,
		Solves:      s.solved,
		PulseActive: s.trigger.Active(),
	}
}

// Run drives the connection loop until ctx is cancelled. Once per second it
// inspects the connection state and either starts a scan or attempts the
// connect sequence; notification decoding happens asynchronously on the
// transport's goroutine.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.uartEnabled {
		if _, err := uart.Start(bluetooth.DefaultAdapter, s.cfg.uartName, s.log); err != nil {
			// the cube pipeline works without the pass-through service
			s.log.WithError(err).Warn("UART service unavailable")
		}
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		case <-ticker.C:
		}

		switch s.client.State() {
		case StateIdle, StateFailed:
			if err := s.client.Scan(ctx); err != nil && ctx.Err() == nil {
				s.log.WithError(err).Warn("scan attempt failed")
			}
		case StateFound:
			if err := s.client.Connect(ctx); err != nil && ctx.Err() == nil {
				s.log.WithError(err).Warn("connect attempt failed")
			}
		default:
			// scanning, connecting or connected: nothing to drive
		}
	}
}

// Close disconnects and releases the solve log.
func (s *Session) Close() error {
	err := s.client.Disconnect()
	if s.db != nil {
		if cerr := s.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// handleNotification decodes one state notification. Decode failures are
// logged and dropped; they never affect connection state.
func (s *Session) handleNotification(data []byte) {
	st, err := protocol.DecodeState(data)
	if err != nil {
		s.log.WithError(err).WithField("len", len(data)).Warn("dropping notification")
		return
	}

	move := moveFromProtocol(st.LastMove, time.Now())
	solved := st.Solved()

	s.mu.Lock()
	s.lastMove = move
	s.hasMove = true
	s.moveCount++
	var movesThisSolve int
	if solved {
		movesThisSolve = s.moveCount
		s.moveCount = 0
		s.solved++
	}
	onMove := s.onMove
	onSolved := s.onSolved
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"move":      move.Notation(),
		"encrypted": st.Encrypted,
		"solved":    solved,
	}).Debug("state decoded")

	if onMove != nil {
		onMove(move)
	}

	if !solved {
		return
	}

	s.log.WithField("moves", movesThisSolve).Info("cube solved")
	if s.solves != nil {
		if _, err := s.solves.Record(s.client.Target(), movesThisSolve); err != nil {
			s.log.WithError(err).Error("failed to record solve")
		}
	}
	s.trigger.Fire()
	if onSolved != nil {
		onSolved()
	}
}

func (s *Session) handleStateChange(state ConnState) {
	s.mu.RLock()
	cb := s.onState
	s.mu.RUnlock()
	if cb != nil {
		cb(state)
	}
}
