// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdsim implements a display.Drawer that previews tri-color e-paper
// frames in the terminal using ANSI color codes.
//
// Useful to iterate on layouts without waiting 15 seconds per refresh on the
// real panel.
package epdsim

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	Width  int
	Height int
	// Chromatic is the third panel color. Defaults to red.
	Chromatic color.NRGBA
	Palette   *ansi256.Palette

	_ struct{}
}

// Dev is a tri-color e-paper emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	width   int
	height  int
	colors  [3]color.NRGBA
	model   color.Palette
	palette ansi256.Palette

	// pixels holds one palette index per pixel, row-major.
	pixels []byte
	drawn  bool
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits local testing of e-paper layouts.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	chromatic := opts.Chromatic
	if chromatic == (color.NRGBA{}) {
		chromatic = color.NRGBA{R: 255, A: 255}
	}
	d := &Dev{
		w:      colorable.NewColorableStdout(),
		width:  opts.Width,
		height: opts.Height,
		colors: [3]color.NRGBA{
			{R: 255, G: 255, B: 255, A: 255},
			{A: 255},
			chromatic,
		},
		palette: *p,
		pixels:  make([]byte, opts.Width*opts.Height),
	}
	d.model = color.Palette{d.colors[0], d.colors[1], d.colors[2]}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("EPDSim{%d, %d}", d.width, d.height)
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so following output is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer. Every drawn pixel snaps to white,
// black or the chromatic color, matching what the panel can render.
func (d *Dev) ColorModel() color.Model {
	return d.model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	if dY := r.Dy(); dY < srcR.Dy() {
		srcR.Max.Y = srcR.Min.Y + dY
	}

	for sY := srcR.Min.Y; sY < srcR.Max.Y; sY++ {
		dY := r.Min.Y + sY - srcR.Min.Y
		for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
			dX := r.Min.X + sX - srcR.Min.X
			d.pixels[dY*d.width+dX] = byte(d.model.Index(src.At(sX, sY)))
		}
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		// Redraw in place.
		fmt.Fprintf(&d.buf, "\033[%dA", d.height)
	}
	for y := 0; y < d.height; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.width; x++ {
			c := d.colors[d.pixels[y*d.width+x]]
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
