package dispatch

import (
	"errors"
	"io"
)

// Confirmer answers a yes/no question the Dispatcher has already printed.
type Confirmer interface {
	Confirm() (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func() (bool, error)

func (f ConfirmFunc) Confirm() (bool, error) { return f() }

// ByteConfirmer reads exactly one byte from R. Only 'y' or 'Y' confirms;
// end of input is a refusal, not an error.
type ByteConfirmer struct {
	R io.Reader
}

func (c ByteConfirmer) Confirm() (bool, error) {
	var b [1]byte
	n, err := io.ReadFull(c.R, b[:])
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return b[0] == 'y' || b[0] == 'Y', nil
}
