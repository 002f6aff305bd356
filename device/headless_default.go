// SPDX-License-Identifier: EPL-2.0

//go:build headless

package device

// Default returns a clocked output that needs no sound card.
func Default() Device { return NewHeadless() }
