// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strconv"
)

// unitFlag is a float flag restricted to [0,1].
type unitFlag struct{ v *float32 }

func (f unitFlag) String() string {
	if f.v == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*f.v), 'g', -1, 32)
}

func (f unitFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return fmt.Errorf("parse %q: %w", s, err)
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("%v outside [0,1]", v)
	}
	*f.v = float32(v)
	return nil
}
