// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/kaossfx/formats/aiff"
	"github.com/ik5/kaossfx/formats/wav"
)

// trackingReader remembers the last ReadAt failure that was not an end of
// input, so a decoder error can be traced back to the handle.
type trackingReader struct {
	r   io.ReaderAt
	err error
}

func (t *trackingReader) ReadAt(p []byte, off int64) (int, error) {
	n, err := t.r.ReadAt(p, off)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}

// classify maps a format decoder error onto the package taxonomy.
func (t *trackingReader) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case t.err != nil:
		ioErr := t.err
		t.err = nil
		return fmt.Errorf("%w: %w", ErrIO, ioErr)
	case isTruncation(err):
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
}

func isTruncation(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, wav.ErrTruncated) ||
		errors.Is(err, aiff.ErrTruncated)
}
