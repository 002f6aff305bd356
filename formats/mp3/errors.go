// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrInvalidStream wraps the go-mp3 error when no MPEG frame could be read.
var ErrInvalidStream = errors.New("invalid MP3 stream")
