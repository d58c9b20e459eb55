// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sendRepeated(byte, int)
	waitUntilIdle()
}

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData(driverOutput{
		scanLength:    uint16(opts.Height - 1),
		scanIsLinear:  true,
		scanG0IsFirst: true,
		scanDirIncr:   true,
	}.encode())

	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{dataEntryMode(xIncrYIncr, entryXDir)})

	setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
	setCursor(ctrl, 0, 0)

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendData([]byte{borderWaveform{
		vbd:      vbdGS,
		fixLevel: fixLevelVSS,
		gsTrans:  gsLUT3,
	}.encode()})

	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendData([]byte{tempSensorInternal})

	ctrl.sendCommand(displayUpdateControl1)
	ctrl.sendData([]byte{0x80, 0x80})

	ctrl.waitUntilIdle()
}

// setWindow programs the addressable RAM window. X coordinates are in RAM
// units of 8 pixels; the low 3 bits of the pixel positions are dropped.
func setWindow(ctrl controller, startX, startY, endX, endY int) {
	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{byte(startX >> 3), byte(endX >> 3)})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte(startY), byte(startY >> 8),
		byte(endY), byte(endY >> 8),
	})
}

// setCursor positions the RAM write cursor. A previous operation may still
// own the bus, so the busy pin is checked first.
func setCursor(ctrl controller, x, y int) {
	ctrl.waitUntilIdle()

	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{byte(x >> 3)})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData([]byte{byte(y), byte(y >> 8)})
}

func writePlane(ctrl controller, cmd byte, plane []byte) {
	ctrl.sendCommand(cmd)
	ctrl.sendData(plane)
}

func fillPlane(ctrl controller, cmd byte, color byte, n int) {
	ctrl.sendCommand(cmd)
	ctrl.sendRepeated(color, n)
}

// updateFrame writes buf to the achromatic bank. Outside partial-update mode
// the chromatic bank is mirrored to the background color so the base copy
// matches on the next full refresh.
func updateFrame(ctrl controller, buf []byte, bg byte, mode PartialUpdate, opts *Opts) {
	setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
	setCursor(ctrl, 0, 0)
	writePlane(ctrl, writeRAMBW, buf)

	if mode == Full {
		ctrl.waitUntilIdle()
		setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
		setCursor(ctrl, 0, 0)
		fillPlane(ctrl, writeRAMRed, bg, opts.planeSize())
	}

	ctrl.waitUntilIdle()
}

// updatePartialFrame writes buf to the given sub-rectangle of the achromatic
// bank. The caller is responsible for keeping the base bank in sync while
// partial-update mode is active.
func updatePartialFrame(ctrl controller, buf []byte, x, y, w, h int) {
	setWindow(ctrl, x, y, x+w-1, y+h-1)
	setCursor(ctrl, x, y)
	writePlane(ctrl, writeRAMBW, buf)
	ctrl.waitUntilIdle()
}

func updateAchromaticFrame(ctrl controller, buf []byte, opts *Opts) {
	setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
	setCursor(ctrl, 0, 0)
	writePlane(ctrl, writeRAMBW, buf)
	ctrl.waitUntilIdle()
}

// updateChromaticFrame writes buf to the chromatic bank. Controllers with an
// inverted chromatic bank (a set bit meaning "not colored") get a bitwise
// inverted copy; the caller's buffer is never modified.
func updateChromaticFrame(ctrl controller, buf []byte, invert bool, opts *Opts) {
	if invert {
		c := make([]byte, len(buf))
		for i, b := range buf {
			c[i] = ^b
		}
		buf = c
	}

	setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
	setCursor(ctrl, 0, 0)
	writePlane(ctrl, writeRAMRed, buf)
	ctrl.waitUntilIdle()
}

// displayFrame commits the staged RAM content to the panel.
func displayFrame(ctrl controller, rev Revision) {
	if rev.supportsLUT {
		flags := updateControl2(0).
			enableClock().
			enableAnalog().
			loadLUT().
			loadTemperature().
			display().
			disableAnalog().
			disableClock()

		ctrl.sendCommand(displayUpdateControl2)
		ctrl.sendData([]byte{flags.encode()})
	}

	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

// clearFrame fills both RAM banks with color. Outside partial-update mode
// each bank is filled twice so the current and base copies match.
func clearFrame(ctrl controller, color byte, mode PartialUpdate, opts *Opts) {
	n := 1
	if mode == Full {
		n = 2
	}

	for i := 0; i < n; i++ {
		setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
		setCursor(ctrl, 0, 0)
		fillPlane(ctrl, writeRAMBW, color, opts.planeSize())
		fillPlane(ctrl, writeRAMRed, color, opts.planeSize())
	}
}

func setLut(ctrl controller, lut LUT) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut[:lutSize])
	ctrl.waitUntilIdle()
}

// sleepDisplay puts the controller into deep sleep. RAM content is retained.
func sleepDisplay(ctrl controller, rev Revision) {
	ctrl.waitUntilIdle()

	if rev.supportsLUT {
		// Power down the analog and clock domains before sleeping.
		flags := updateControl2(0).
			enableClock().
			enableAnalog().
			disableAnalog().
			disableClock()

		ctrl.sendCommand(displayUpdateControl2)
		ctrl.sendData([]byte{flags.encode()})
		ctrl.sendCommand(masterActivation)
		ctrl.waitUntilIdle()
	}

	ctrl.sendCommand(deepSleepMode)
	ctrl.sendData([]byte{deepSleepRetainRAM})
}
