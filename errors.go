package ask433

import "errors"

// ErrPayloadTooLong is returned by SendNonBlocking when the payload exceeds
// MaxMessage (Send reports the same case by returning false). No driver
// state changes.
var ErrPayloadTooLong = errors.New("ask433: payload exceeds MaxMessage")

// ErrBusyTransmitting is returned by SendNonBlocking (never by Send, which
// busy-waits instead) when a transmission is already in flight.
var ErrBusyTransmitting = errors.New("ask433: transmitter busy")

// The remaining receive-side failure modes — a bad length field, a failed
// CRC, an address mismatch, an invalid 4b6b symbol — never propagate to
// the caller. They are local outcomes observable only through the
// rxGood/rxBad counters and the optional logger.
