package protocol

import "fmt"

// Face is a face code as sent by the cube, 1 through 6.
type Face byte

const (
	FaceB Face = 1
	FaceD Face = 2
	FaceL Face = 3
	FaceU Face = 4
	FaceR Face = 5
	FaceF Face = 6
)

// Letter returns the standard notation letter for the face.
func (f Face) Letter() string {
	switch f {
	case FaceB:
		return "B"
	case FaceD:
		return "D"
	case FaceL:
		return "L"
	case FaceU:
		return "U"
	case FaceR:
		return "R"
	case FaceF:
		return "F"
	default:
		return "?"
	}
}

// Direction is the turn direction of the last move.
type Direction byte

const (
	CCW Direction = 0 // counter-clockwise
	CW  Direction = 1 // clockwise
)

// LastMove is the face turn that produced a state notification.
type LastMove struct {
	Face      Face
	Direction Direction
}

// Notation returns the move in standard notation, e.g. "R" or "R'".
func (m LastMove) Notation() string {
	if m.Direction == CCW {
		return m.Face.Letter() + "'"
	}
	return m.Face.Letter()
}

func (m LastMove) String() string {
	return m.Notation()
}

// State is one decoded cube state notification.
type State struct {
	Body      [BodyLen]byte // canonical cube-state record, post-decryption
	LastMove  LastMove
	Encrypted bool // whether the notification arrived obfuscated
}

// Solved reports whether the body matches the solved pattern.
func (s State) Solved() bool {
	return IsSolved(s.Body)
}

// DecodeState decodes a state notification. The input is copied before
// decryption, so the transport's buffer is never mutated. Short payloads and
// out-of-range face or direction codes return ErrMalformedPayload.
func DecodeState(payload []byte) (State, error) {
	if len(payload) < MinStateLen {
		return State{}, fmt.Errorf("%w: %d bytes, need %d", ErrMalformedPayload, len(payload), MinStateLen)
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)

	var st State
	if IsEncrypted(buf) {
		st.Encrypted = true
		if err := Decrypt(buf); err != nil {
			return State{}, err
		}
	}

	copy(st.Body[:], buf[:BodyLen])

	face := GetNibble(buf, faceNibble)
	if face < 1 || face > 6 {
		return State{}, fmt.Errorf("%w: face code %d out of range", ErrMalformedPayload, face)
	}
	dir := GetNibble(buf, directionNibble)
	if dir > 1 {
		return State{}, fmt.Errorf("%w: direction code %d out of range", ErrMalformedPayload, dir)
	}

	st.LastMove = LastMove{Face: Face(face), Direction: Direction(dir)}
	return st, nil
}
