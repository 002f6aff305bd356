// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrUnknownFormat, "unknown audio container"},
		{ErrShortHeader, "header too short to identify format"},
		{ErrNotSeekable, "source is not seekable"},
		{ErrInvalidChannels, "unsupported channel count"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	all := []error{ErrInvalidDstSize, ErrUnknownFormat, ErrShortHeader, ErrNotSeekable, ErrInvalidChannels}

	for i, err := range all {
		wrapped := fmt.Errorf("open track: %w", err)
		if !errors.Is(wrapped, err) {
			t.Errorf("errors.Is(%v, %v) = false", wrapped, err)
		}
		if !errors.Is(errors.Join(err, errors.New("additional context")), err) {
			t.Errorf("errors.Is() failed for joined %v", err)
		}
		for j, other := range all {
			if i != j && errors.Is(wrapped, other) {
				t.Errorf("%v matches unrelated %v", wrapped, other)
			}
		}
	}
}
