package giiker

import (
	"strings"
	"time"

	"github.com/mlowell/giiker_trigger/internal/protocol"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Turn represents the direction of a face turn. The cube reports quarter
// turns only.
type Turn int

const (
	CW  Turn = 1  // Clockwise (90 degrees)
	CCW Turn = -1 // Counter-clockwise (90 degrees)
)

// Move represents a single cube move with face, turn direction, and the time
// the notification carrying it arrived.
type Move struct {
	Face Face
	Turn Turn
	Time time.Time
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', U, U'
func (m Move) Notation() string {
	if m.Turn == CCW {
		return string(m.Face) + "'"
	}
	return string(m.Face)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// moveFromProtocol converts a decoded last-move field into a Move.
func moveFromProtocol(lm protocol.LastMove, t time.Time) Move {
	turn := CW
	if lm.Direction == protocol.CCW {
		turn = CCW
	}
	return Move{Face: Face(lm.Face.Letter()), Turn: turn, Time: t}
}
