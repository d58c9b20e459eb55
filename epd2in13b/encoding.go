// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

// borderWaveformVBD selects the VBD level driven onto the panel border.
type borderWaveformVBD byte

const (
	vbdGS borderWaveformVBD = iota
	vbdFixLevel
	vbdVcom
	vbdHiZ
)

// borderWaveformFixLevel selects the fixed voltage used when vbdFixLevel is
// active.
type borderWaveformFixLevel byte

const (
	fixLevelVSS borderWaveformFixLevel = iota
	fixLevelVSH1
	fixLevelVSL
	fixLevelVSH2
)

// borderWaveformGS selects the grayscale transition applied to the border.
type borderWaveformGS byte

const (
	gsLUT0 borderWaveformGS = iota
	gsLUT1
	gsLUT2
	gsLUT3
)

// borderWaveform is the payload of the borderWaveformControl command.
type borderWaveform struct {
	vbd      borderWaveformVBD
	fixLevel borderWaveformFixLevel
	gsTrans  borderWaveformGS
}

// encode packs the three sub-fields into the single configuration byte.
// Bits 2..3 are reserved and stay zero.
func (b borderWaveform) encode() byte {
	return byte(b.vbd&0x03)<<6 | byte(b.fixLevel&0x03)<<4 | byte(b.gsTrans&0x03)
}

// driverOutput is the payload of the driverOutputControl command. scanLength
// is the number of gate lines minus one.
type driverOutput struct {
	scanLength    uint16
	scanIsLinear  bool
	scanG0IsFirst bool
	scanDirIncr   bool
}

// encode returns the little-endian scan length followed by the flags byte.
// The controller stores each flag inverted: a set bit disables the behavior.
func (o driverOutput) encode() []byte {
	var flags byte
	if !o.scanDirIncr {
		flags |= 1 << 0
	}
	if !o.scanG0IsFirst {
		flags |= 1 << 1
	}
	if !o.scanIsLinear {
		flags |= 1 << 2
	}
	return []byte{byte(o.scanLength), byte(o.scanLength >> 8), flags}
}

// dataEntryIncr selects how the X and Y address counters change after each
// RAM write.
type dataEntryIncr byte

const (
	xDecrYDecr dataEntryIncr = 0x0
	xIncrYDecr dataEntryIncr = 0x1
	xDecrYIncr dataEntryIncr = 0x2
	xIncrYIncr dataEntryIncr = 0x3
)

// dataEntryDir selects the counter that advances first.
type dataEntryDir byte

const (
	entryXDir dataEntryDir = 0x0
	entryYDir dataEntryDir = 0x4
)

// dataEntryMode packs the payload of the dataEntryModeSetting command.
func dataEntryMode(incr dataEntryIncr, dir dataEntryDir) byte {
	return byte(incr) | byte(dir)
}

// updateControl2 accumulates the power domain and action flags committed by
// the next masterActivation. Only the final bit state matters, not the order
// in which flags were composed.
type updateControl2 byte

func (u updateControl2) enableClock() updateControl2 {
	return u | updateControl2(displayUpdateEnableClock)
}

func (u updateControl2) disableClock() updateControl2 {
	return u | updateControl2(displayUpdateDisableClock)
}

func (u updateControl2) enableAnalog() updateControl2 {
	return u | updateControl2(displayUpdateEnableAnalog)
}

func (u updateControl2) disableAnalog() updateControl2 {
	return u | updateControl2(displayUpdateDisableAnalog)
}

func (u updateControl2) loadLUT() updateControl2 {
	return u | updateControl2(displayUpdateLoadLUTFromOTP)
}

func (u updateControl2) loadTemperature() updateControl2 {
	return u | updateControl2(displayUpdateLoadTemperature)
}

func (u updateControl2) display() updateControl2 {
	return u | updateControl2(displayUpdateDisplay)
}

func (u updateControl2) encode() byte {
	return byte(u)
}
