package giiker

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mlowell/giiker_trigger/internal/trigger"
)

// capturePulser records level changes so tests can see the trigger act.
type capturePulser struct {
	highs int
}

func (c *capturePulser) Set(high bool) error {
	if high {
		c.highs++
	}
	return nil
}

func testSession(t *testing.T) (*Session, *capturePulser) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	pulser := &capturePulser{}
	return &Session{
		cfg:     defaultConfig(),
		log:     logger,
		trigger: trigger.New(pulser, time.Hour, logger),
	}, pulser
}

// solvedNotification is an unencrypted payload whose body matches the solved
// pattern, with last move U clockwise.
func solvedNotification() []byte {
	p := []byte{
		0x12, 0x34, 0x56, 0x78, 0x33, 0x33, 0x33, 0x33,
		0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0x00, 0x00,
		0x41, 0x00, 0x00, 0x00,
	}
	return p
}

func TestHandleNotification_SolvedFiresOnce(t *testing.T) {
	s, pulser := testSession(t)

	var solvedEvents int
	s.OnSolved(func() { solvedEvents++ })

	s.handleNotification(solvedNotification())

	if solvedEvents != 1 {
		t.Errorf("solved events = %d, want 1", solvedEvents)
	}
	if pulser.highs != 1 {
		t.Errorf("output raised %d times, want 1", pulser.highs)
	}
}

func TestHandleNotification_RepeatSolvedSuppressedByTrigger(t *testing.T) {
	s, pulser := testSession(t)

	var solvedEvents int
	s.OnSolved(func() { solvedEvents++ })

	// A cube left sitting solved keeps notifying; the solved event fires per
	// qualifying notification but the pulse is held, not restarted.
	s.handleNotification(solvedNotification())
	s.handleNotification(solvedNotification())

	if solvedEvents != 2 {
		t.Errorf("solved events = %d, want 2", solvedEvents)
	}
	if pulser.highs != 1 {
		t.Errorf("output raised %d times, want 1", pulser.highs)
	}
}

func TestHandleNotification_UnsolvedBody(t *testing.T) {
	s, pulser := testSession(t)

	var moves []Move
	s.OnMove(func(m Move) { moves = append(moves, m) })
	s.OnSolved(func() { t.Error("unsolved body should not fire solved") })

	p := solvedNotification()
	p[3] ^= 0xFF
	p[16] = 0x50 // R'
	s.handleNotification(p)

	if pulser.highs != 0 {
		t.Errorf("output raised %d times, want 0", pulser.highs)
	}
	if len(moves) != 1 || moves[0].Notation() != "R'" {
		t.Errorf("moves = %v, want [R']", moves)
	}
}

func TestHandleNotification_MalformedDropped(t *testing.T) {
	s, _ := testSession(t)

	s.OnMove(func(Move) { t.Error("malformed payload should not produce a move") })
	s.OnSolved(func() { t.Error("malformed payload should not fire solved") })

	s.handleNotification([]byte{0x01, 0x02})

	p := solvedNotification()
	p[16] = 0x01 // face code 0
	s.handleNotification(p)
}

func TestMoveCountResetsOnSolve(t *testing.T) {
	s, _ := testSession(t)

	scrambled := solvedNotification()
	scrambled[0] ^= 0xFF
	s.handleNotification(scrambled)
	s.handleNotification(scrambled)
	s.handleNotification(solvedNotification())

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.moveCount != 0 {
		t.Errorf("move count after solve = %d, want 0", s.moveCount)
	}
	if s.solved != 1 {
		t.Errorf("solves = %d, want 1", s.solved)
	}
}

func TestFormatMoves(t *testing.T) {
	moves := []Move{
		{Face: FaceR, Turn: CW},
		{Face: FaceU, Turn: CCW},
		{Face: FaceF, Turn: CW},
	}
	if got := FormatMoves(moves); got != "R U' F" {
		t.Errorf("FormatMoves = %q, want %q", got, "R U' F")
	}
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q, want empty", got)
	}
}
