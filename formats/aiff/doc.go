// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff. PCM at 8, 16, 24 and 32 bits
// is supported; other depths return ErrUnsupportedBitDepth. Input shorter
// than a container header returns ErrTruncated.
//
// AIFF carries no seek index. SeekFrame decodes forward to the target and
// rewinds to the start of the file when moving backwards.
//
//	source, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
package aiff
