// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

import (
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// packPlane converts the drawing buffer to the controller's RAM layout: one
// bit per pixel, row-major, 8 pixels per byte with the leftmost pixel in the
// most significant bit.
func packPlane(src *image1bit.VerticalLSB, w, h int) []byte {
	cols := (w + 7) / 8
	buf := make([]byte, cols*h)

	for y := 0; y < h; y++ {
		row := buf[y*cols:]
		for x := 0; x < cols; x++ {
			for bit := 0; bit < 8; bit++ {
				if src.BitAt(x*8+bit, y) {
					row[x] |= 0x80 >> bit
				}
			}
		}
	}

	return buf
}

// packImage converts an arbitrary image to a bit-plane, one bit per pixel.
// Without invert a bit is set where the pixel converts to image1bit.On
// (light); with invert a bit is set where the pixel is dark, which is the
// layout of the chromatic bank.
func packImage(src image.Image, w, h int, invert bool) []byte {
	cols := (w + 7) / 8
	buf := make([]byte, cols*h)

	b := src.Bounds()
	for y := 0; y < h; y++ {
		row := buf[y*cols:]
		for x := 0; x < w; x++ {
			on := false
			if x < b.Dx() && y < b.Dy() {
				px := src.At(b.Min.X+x, b.Min.Y+y)
				on = image1bit.BitModel.Convert(px).(image1bit.Bit) == image1bit.On
			}
			if on != invert {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
	}

	return buf
}
