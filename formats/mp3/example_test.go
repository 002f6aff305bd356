// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/kaossfx/audio"
	"github.com/ik5/kaossfx/formats/mp3"
)

// ExampleDecoder_Decode_errorHandling shows how invalid data is reported.
func ExampleDecoder_Decode_errorHandling() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 file")))
	fmt.Println(errors.Is(err, mp3.ErrInvalidStream))

	// Output:
	// true
}

// ExampleDecoder_Decode_seek jumps to the middle of a file.
func ExampleDecoder_Decode_seek() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	seeker := src.(audio.Seeker)
	if seeker.Frames() > 0 {
		if err := seeker.SeekFrame(seeker.Frames() / 2); err != nil {
			log.Fatal(err)
		}
	}

	buf := make([]float32, 4096)
	n, _ := src.ReadSamples(buf)
	fmt.Printf("read %d samples at %d Hz\n", n, src.SampleRate())
}
