// SPDX-License-Identifier: EPL-2.0

// Package engine is the playback engine: a decode worker filling a ring
// buffer, a render callback draining it through two effect slots, and the
// control surface the host drives.
//
// Three goroutines share it. The device goroutine calls Render, which
// never blocks or allocates. The worker goroutine owns the source and
// does all decoding and seeking. Control callers publish through atomic
// cells and poll the status the render side publishes.
package engine
