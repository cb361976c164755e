package giiker

import (
	"github.com/mlowell/giiker_trigger/internal/ble"
	"github.com/mlowell/giiker_trigger/internal/protocol"
)

// Sentinel errors. Connection errors abort a single connection attempt;
// ErrMalformedPayload drops a single notification. None are fatal to the
// session.
var (
	ErrServiceNotFound        = ble.ErrServiceNotFound
	ErrCharacteristicNotFound = ble.ErrCharacteristicNotFound
	ErrNotifyUnsupported      = ble.ErrNotifyUnsupported
	ErrMalformedPayload       = protocol.ErrMalformedPayload
)
