// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdwaveshare is a container for Waveshare e-paper device drivers.
//
// The drivers speak the SSD16xx command protocol over 4-wire SPI. Package
// epd2in13b drives the 2.13 inch tri-color HAT; package epdsim previews
// frames in a terminal without hardware.
package epdwaveshare
