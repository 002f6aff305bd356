// SPDX-License-Identifier: EPL-2.0

// Package transport holds the playback state machine shared by the control
// side and the render goroutine.
//
// The Controller records what the host asked for and publishes it through
// a params.Transport cell. The render goroutine applies those commands,
// advances the position by frames actually played, and publishes a Status.
// Position and state are polled; nothing is pushed to the host.
package transport
