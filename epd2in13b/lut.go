// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

// LUT contains the waveform that is used to program the display. The first
// lutSize bytes go to the LUT register; the remaining bytes hold the gate and
// source driving voltages the waveform was tuned for.
type LUT []byte

// lutSize is the size of the controller's LUT register.
const lutSize = 70

// lutFull is the factory waveform for a complete refresh.
var lutFull = LUT{
	0x80, 0x60, 0x40, 0x00, 0x00, 0x00, 0x00,
	0x10, 0x60, 0x20, 0x00, 0x00, 0x00, 0x00,
	0x80, 0x60, 0x40, 0x00, 0x00, 0x00, 0x00,
	0x10, 0x60, 0x20, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x03, 0x03, 0x00, 0x00, 0x02,
	0x09, 0x09, 0x00, 0x00, 0x02,
	0x03, 0x03, 0x00, 0x00, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,

	0x15, 0x41, 0xA8, 0x32, 0x30, 0x0A,
}

// lutPartial drives only the pixels that changed since the base frame.
// Faster than lutFull but leaves ghosting behind.
var lutPartial = LUT{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x0A, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,

	0x15, 0x41, 0xA8, 0x32, 0x30, 0x0A,
}
