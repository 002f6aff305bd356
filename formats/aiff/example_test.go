// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/kaossfx/audio"
	"github.com/ik5/kaossfx/formats/aiff"
)

// ExampleDecoder_Decode_errorHandling shows how invalid and short data are reported.
func ExampleDecoder_Decode_errorHandling() {
	_, err := aiff.Decoder{}.Decode(bytes.NewReader([]byte("not an aiff file")))
	fmt.Println(errors.Is(err, aiff.ErrNotAiffFile))

	_, err = aiff.Decoder{}.Decode(bytes.NewReader([]byte("FORM")))
	fmt.Println(errors.Is(err, aiff.ErrTruncated))

	// Output:
	// true
	// true
}

// ExampleDecoder_Decode_seek rewinds a partly played file.
func ExampleDecoder_Decode_seek() {
	f, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	buf := make([]float32, 4096)
	_, _ = src.ReadSamples(buf)

	if err := src.(audio.Seeker).SeekFrame(0); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d Hz, %d channels\n", src.SampleRate(), src.Channels())
}
