// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAVSpec describes an in-memory WAV fixture.
type WAVSpec struct {
	SampleRate int
	Channels   int
	BitDepth   int  // 8, 16, 24, 32 or 64 (64 requires Float)
	Float      bool // IEEE float samples
	Extensible bool // WAVE_FORMAT_EXTENSIBLE fmt chunk
	Frames     int
	// Wave returns the sample for a frame and channel, in [-1,1].
	// Nil produces silence.
	Wave func(frame, channel int) float32
	// JunkChunk inserts a LIST chunk between fmt and data.
	JunkChunk bool
	// Truncate drops this many bytes from the end of the file.
	Truncate int
}

// WAV renders spec into a complete RIFF/WAVE file.
func WAV(spec WAVSpec) []byte {
	bytesPerSample := spec.BitDepth / 8
	blockAlign := spec.Channels * bytesPerSample
	dataSize := spec.Frames * blockAlign

	format := uint16(1)
	if spec.Float {
		format = 3
	}

	fmtBody := new(bytes.Buffer)
	tag := format
	if spec.Extensible {
		tag = 0xFFFE
	}
	le := binary.LittleEndian
	_ = binary.Write(fmtBody, le, tag)
	_ = binary.Write(fmtBody, le, uint16(spec.Channels))
	_ = binary.Write(fmtBody, le, uint32(spec.SampleRate))
	_ = binary.Write(fmtBody, le, uint32(spec.SampleRate*blockAlign))
	_ = binary.Write(fmtBody, le, uint16(blockAlign))
	_ = binary.Write(fmtBody, le, uint16(spec.BitDepth))
	if spec.Extensible {
		_ = binary.Write(fmtBody, le, uint16(22))
		_ = binary.Write(fmtBody, le, uint16(spec.BitDepth))
		_ = binary.Write(fmtBody, le, uint32(0))
		// sub-format GUID: format tag followed by the fixed KSDATAFORMAT suffix
		_ = binary.Write(fmtBody, le, format)
		fmtBody.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	}

	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	body.WriteString("fmt ")
	_ = binary.Write(body, le, uint32(fmtBody.Len()))
	body.Write(fmtBody.Bytes())

	if spec.JunkChunk {
		body.WriteString("LIST")
		_ = binary.Write(body, le, uint32(6))
		body.Write([]byte{'I', 'N', 'F', 'O', 'x', 'y'})
	}

	body.WriteString("data")
	_ = binary.Write(body, le, uint32(dataSize))

	sample := make([]byte, 8)
	for f := range spec.Frames {
		for c := range spec.Channels {
			var v float32
			if spec.Wave != nil {
				v = spec.Wave(f, c)
			}
			encodeSample(sample, v, spec.BitDepth, spec.Float)
			body.Write(sample[:bytesPerSample])
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	_ = binary.Write(out, le, uint32(body.Len()))
	out.Write(body.Bytes())

	b := out.Bytes()
	if spec.Truncate > 0 && spec.Truncate < len(b) {
		b = b[:len(b)-spec.Truncate]
	}
	return b
}

// Quantize returns what a decoder should read back for v at bitDepth.
func Quantize(v float32, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(clampInt(int(math.Round(float64(v)*128)), -128, 127)) / 128
	case 16:
		return float32(clampInt(int(math.Round(float64(v)*32768)), math.MinInt16, math.MaxInt16)) / 32768
	case 24:
		return float32(clampInt(int(math.Round(float64(v)*8388608)), -8388608, 8388607)) / 8388608
	case 32:
		return float32(float64(clampInt(int(math.Round(float64(v)*2147483648)), math.MinInt32, math.MaxInt32)) / 2147483648)
	}
	return v
}

func encodeSample(dst []byte, v float32, bitDepth int, isFloat bool) {
	le := binary.LittleEndian
	if isFloat {
		if bitDepth == 64 {
			le.PutUint64(dst, math.Float64bits(float64(v)))
			return
		}
		le.PutUint32(dst, math.Float32bits(v))
		return
	}

	switch bitDepth {
	case 8:
		dst[0] = byte(clampInt(int(math.Round(float64(v)*128)), -128, 127) + 128)
	case 16:
		le.PutUint16(dst, uint16(int16(clampInt(int(math.Round(float64(v)*32768)), math.MinInt16, math.MaxInt16))))
	case 24:
		x := clampInt(int(math.Round(float64(v)*8388608)), -8388608, 8388607)
		dst[0] = byte(x)
		dst[1] = byte(x >> 8)
		dst[2] = byte(x >> 16)
	case 32:
		x := clampInt(int(math.Round(float64(v)*2147483648)), math.MinInt32, math.MaxInt32)
		le.PutUint32(dst, uint32(int32(x)))
	}
}

func clampInt(x, lo, hi int) int {
	return max(lo, min(x, hi))
}
