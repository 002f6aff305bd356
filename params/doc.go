// SPDX-License-Identifier: EPL-2.0

// Package params is the lock-free bridge between control callers and the
// render goroutine. Writers never block the reader and the reader never
// allocates; a value may be one render callback stale but is never torn.
package params
