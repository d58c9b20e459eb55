// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the busy pin does not report idle within
// Opts.BusyTimeout. The panel is most likely disconnected or mid-refresh.
var ErrTimeout = errors.New("epd2in13b: busy pin did not become idle")

// ErrUnsupported is returned for operations the configured controller
// revision does not implement.
var ErrUnsupported = errors.New("epd2in13b: operation not supported by this revision")

// BufferSizeError is returned when a frame buffer does not match the size of
// the addressed RAM region.
type BufferSizeError struct {
	Op   string
	Want int
	Got  int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("epd2in13b: %s: buffer must be %d bytes, got %d", e.Op, e.Want, e.Got)
}

// State describes the power state of the controller.
type State int

const (
	// StateUninitialized is the state before the first Init.
	StateUninitialized State = iota
	// StateReady accepts frame operations.
	StateReady
	// StateAsleep is deep sleep. Only WakeUp leaves it.
	StateAsleep
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateAsleep:
		return "asleep"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StateError is returned when an operation is attempted in a power state
// that does not permit it.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("epd2in13b: %s requires an initialized display, controller is %s", e.Op, e.State)
}
