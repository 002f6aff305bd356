// SPDX-License-Identifier: EPL-2.0

// Package visualizer holds a fixed-size mono snapshot of the rendered
// signal for hosts that poll it for drawing.
package visualizer
