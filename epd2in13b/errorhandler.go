// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

import (
	"bytes"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. After the first failure
// all further operations are skipped and the first error is kept.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

// sendCommand writes a single opcode byte with the data/command pin low.
func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
	eh.csOut(gpio.High)
}

// sendData writes payload bytes with the data/command pin high. Transfers
// larger than the SPI driver allows are split.
func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	for len(data) > 0 && eh.err == nil {
		n := len(data)
		if n > eh.d.maxTxSize {
			n = eh.d.maxTxSize
		}
		eh.cTx(data[:n], nil)
		data = data[n:]
	}
	eh.csOut(gpio.High)
}

// sendRepeated writes count copies of b in the data phase, used to fill a
// RAM bank with a constant without allocating the whole plane.
func (eh *errorHandler) sendRepeated(b byte, count int) {
	if eh.err != nil {
		return
	}

	chunk := count
	if chunk > eh.d.maxTxSize {
		chunk = eh.d.maxTxSize
	}
	data := bytes.Repeat([]byte{b}, chunk)

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	for count > 0 && eh.err == nil {
		n := count
		if n > len(data) {
			n = len(data)
		}
		eh.cTx(data[:n], nil)
		count -= n
	}
	eh.csOut(gpio.High)
}

// reset pulses the reset pin low and lets the controller settle.
func (eh *errorHandler) reset(pulseLow, pulseHigh time.Duration) {
	if eh.err != nil {
		return
	}

	eh.rstOut(gpio.Low)
	time.Sleep(pulseLow)
	eh.rstOut(gpio.High)
	time.Sleep(pulseHigh)
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.pollBusy()
}
