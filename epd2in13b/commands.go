// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

// Commands
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	boosterSoftStartControl        byte = 0x0C
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	tempSensorRegWrite             byte = 0x1A
	tempSensorRegRead              byte = 0x1B
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	readRAM                        byte = 0x27
	vcomSense                      byte = 0x28
	vcomRegisterWrite              byte = 0x2C
	statusBitRead                  byte = 0x2F
	writeLutRegister               byte = 0x32
	writeDisplayOptionRegister     byte = 0x37
	borderWaveformControl          byte = 0x3C
	endOptionEOPT                  byte = 0x3F
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	autoWriteRedRAMRegPattern      byte = 0x46
	autoWriteBWRAMRegPattern       byte = 0x47
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
	nop                            byte = 0x7F
)

// Flags for the displayUpdateControl2 command.
const (
	displayUpdateDisableClock byte = 1 << iota
	displayUpdateDisableAnalog
	displayUpdateDisplay
	displayUpdateMode2
	displayUpdateLoadLUTFromOTP
	displayUpdateLoadTemperature
	displayUpdateEnableClock
	displayUpdateEnableAnalog
)

// Deep sleep mode codes for the deepSleepMode command.
const (
	deepSleepNormal    byte = 0x00
	deepSleepRetainRAM byte = 0x01
	deepSleepNoRAM     byte = 0x03
)

// tempSensorInternal selects the controller's built-in temperature sensor.
const tempSensorInternal byte = 0x80
