// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrInvalidStream wraps the oggvorbis error when the Ogg headers cannot be read.
var ErrInvalidStream = errors.New("invalid Ogg Vorbis stream")
