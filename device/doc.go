// SPDX-License-Identifier: EPL-2.0

// Package device connects a Renderer to an audio output.
//
// Default is the system sound card through oto, or a clocked headless
// puller when built with the headless tag.
package device
