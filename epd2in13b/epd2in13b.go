// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3/rpi"
)

// Color is the fill color used for the panel background and for Clear.
type Color int

// Valid Color.
const (
	Black Color = iota
	White
	Chromatic
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Chromatic:
		return "chromatic"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// fillByte is the pattern written when a RAM bank is filled with this color.
func (c Color) fillByte() byte {
	if c == White {
		return 0xFF
	}
	return 0x00
}

// PartialUpdate defines if the display should do a full update or just a
// partial update.
type PartialUpdate bool

const (
	// Full should update the complete display.
	Full PartialUpdate = false
	// Partial should update only partial parts of the display.
	Partial PartialUpdate = true
)

// Revision describes the capabilities of one revision of the display
// controller. The refresh logic is shared; everything revision specific is
// data held here.
type Revision struct {
	name string

	// supportsLUT is set when the revision exposes the LUT register and the
	// displayUpdateControl2 power sequencing.
	supportsLUT bool
	// supportsPartialUpdate is set when sub-rectangle RAM writes are usable.
	supportsPartialUpdate bool
	// invertChromatic is set when the chromatic bank stores "not colored" as
	// a set bit and buffers must be inverted before transmission.
	invertChromatic bool

	// busyActive is the level the busy pin reports while the controller owns
	// the bus.
	busyActive gpio.Level

	resetPulse  time.Duration
	resetSettle time.Duration
}

func (r Revision) String() string {
	return r.name
}

// RevisionV3 is the legacy tri-color controller: no LUT access, no partial
// refresh, chromatic bank with inverted polarity.
var RevisionV3 = Revision{
	name:            "v3",
	invertChromatic: true,
	busyActive:      gpio.High,
	resetPulse:      10 * time.Millisecond,
	resetSettle:     10 * time.Millisecond,
}

// RevisionV4 adds the LUT register and LUT based partial refresh. The
// chromatic bank is transmitted as-is.
var RevisionV4 = Revision{
	name:                  "v4",
	supportsLUT:           true,
	supportsPartialUpdate: true,
	busyActive:            gpio.High,
	resetPulse:            10 * time.Millisecond,
	resetSettle:           10 * time.Millisecond,
}

// Opts definies the structure of the display configuration.
type Opts struct {
	Width    int
	Height   int
	Revision Revision

	// BusyTimeout bounds every busy pin wait. Expired waits surface
	// ErrTimeout. A tri-color full refresh takes around 15 seconds.
	BusyTimeout time.Duration
	// BusyPollInterval is the busy pin sampling period.
	BusyPollInterval time.Duration

	FullUpdate    LUT
	PartialUpdate LUT
}

const (
	defaultBusyTimeout      = 30 * time.Second
	defaultBusyPollInterval = 10 * time.Millisecond
)

// planeSize is the number of bytes in one full bit-plane: rows of
// ceil(Width/8) bytes, one row per line.
func (o *Opts) planeSize() int {
	return (o.Width + 7) / 8 * o.Height
}

// EPD2in13bV3 contains the display configuration for the 2.13" B V3 HAT.
var EPD2in13bV3 = Opts{
	Width:    122,
	Height:   250,
	Revision: RevisionV3,
}

// EPD2in13bV4 contains the display configuration for the 2.13" B V4 HAT.
var EPD2in13bV4 = Opts{
	Width:         122,
	Height:        250,
	Revision:      RevisionV4,
	FullUpdate:    lutFull,
	PartialUpdate: lutPartial,
}

// Dev defines the handler which is used to access the display.
//
// A Dev is not safe for concurrent use; the caller serializes all access.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	maxTxSize int
	opts      Opts

	state  State
	mode   PartialUpdate
	color  Color
	buffer *image1bit.VerticalLSB
}

// New creates new handler which is used to access the display.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096 // Use a conservative default.
	}

	d := &Dev{
		c:         c,
		dc:        dc,
		cs:        cs,
		rst:       rst,
		busy:      busy,
		maxTxSize: maxTxSize,
		opts:      *opts,
		state:     StateUninitialized,
		mode:      Full,
		color:     White,
		buffer: image1bit.NewVerticalLSB(image.Rect(
			0, 0, (opts.Width+7)/8*8, opts.Height,
		)),
	}
	if d.opts.BusyTimeout <= 0 {
		d.opts.BusyTimeout = defaultBusyTimeout
	}
	if d.opts.BusyPollInterval <= 0 {
		d.opts.BusyPollInterval = defaultBusyPollInterval
	}

	// Default to a white panel.
	draw.Src.Draw(d.buffer, d.buffer.Bounds(), &image.Uniform{image1bit.On}, image.Point{})

	return d, nil
}

// NewHat creates new handler which is used to access the display. Default
// Waveshare Hat configuration is used.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.opts.Width, d.opts.Height)
}

// Width returns the panel width in pixels.
func (d *Dev) Width() int {
	return d.opts.Width
}

// Height returns the panel height in pixels.
func (d *Dev) Height() int {
	return d.opts.Height
}

// SetBackgroundColor changes the color used to fill RAM banks that are not
// written explicitly. It takes effect on the next update or clear.
func (d *Dev) SetBackgroundColor(c Color) {
	d.color = c
}

// BackgroundColor returns the current background color.
func (d *Dev) BackgroundColor() Color {
	return d.color
}

// State returns the current controller power state.
func (d *Dev) State() State {
	return d.state
}

// Init configures the display for usage through the other functions.
//
// It performs the hardware reset and programs the full panel geometry,
// scan direction, border waveform and temperature sensor.
func (d *Dev) Init() error {
	eh := errorHandler{d: d}

	eh.reset(d.opts.Revision.resetPulse, d.opts.Revision.resetSettle)
	initDisplay(&eh, &d.opts)

	if eh.err != nil {
		return eh.err
	}
	d.state = StateReady
	d.mode = Full
	return nil
}

// Sleep makes the controller enter deep sleep mode. It can be woken up by
// calling WakeUp. RAM content is retained.
func (d *Dev) Sleep() error {
	if err := d.ready("Sleep"); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	sleepDisplay(&eh, d.opts.Revision)

	if eh.err != nil {
		return eh.err
	}
	d.state = StateAsleep
	return nil
}

// WakeUp re-initializes a controller previously put to sleep.
func (d *Dev) WakeUp() error {
	return d.Init()
}

// WaitUntilIdle blocks until the busy pin reports idle or Opts.BusyTimeout
// expires, in which case ErrTimeout is returned.
func (d *Dev) WaitUntilIdle() error {
	return d.pollBusy()
}

func (d *Dev) pollBusy() error {
	deadline := time.Now().Add(d.opts.BusyTimeout)
	for d.busy.Read() == d.opts.Revision.busyActive {
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(d.opts.BusyPollInterval)
	}
	return nil
}

func (d *Dev) ready(op string) error {
	if d.state != StateReady {
		return &StateError{Op: op, State: d.state}
	}
	return nil
}

func (d *Dev) checkPlane(op string, buf []byte) error {
	if len(buf) != d.opts.planeSize() {
		return &BufferSizeError{Op: op, Want: d.opts.planeSize(), Got: len(buf)}
	}
	return nil
}

// UpdateFrame writes a full achromatic frame to the controller RAM. The
// buffer holds one bit per pixel, row-major, ceil(Width/8) bytes per row.
// The frame becomes visible on the next DisplayFrame.
func (d *Dev) UpdateFrame(buf []byte) error {
	if err := d.ready("UpdateFrame"); err != nil {
		return err
	}
	if err := d.checkPlane("UpdateFrame", buf); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	updateFrame(&eh, buf, d.color.fillByte(), d.mode, &d.opts)
	return eh.err
}

// UpdatePartialFrame writes buf to the sub-rectangle at (x, y) of the
// achromatic RAM bank. The rectangle is rounded down to 8 pixel granularity
// on the X axis by the controller.
//
// While partial-update mode is active the controller compares the write
// against the base bank, which cannot be read back; callers must keep the
// base bank in sync or the next refresh shows stale pixels.
func (d *Dev) UpdatePartialFrame(buf []byte, x, y, w, h int) error {
	if err := d.ready("UpdatePartialFrame"); err != nil {
		return err
	}
	if !d.opts.Revision.supportsPartialUpdate {
		return fmt.Errorf("epd2in13b: UpdatePartialFrame: %w", ErrUnsupported)
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > d.opts.Width || y+h > d.opts.Height {
		return fmt.Errorf("epd2in13b: UpdatePartialFrame: rectangle %dx%d at (%d, %d) outside %dx%d panel",
			w, h, x, y, d.opts.Width, d.opts.Height)
	}
	if want := w * h / 8; len(buf) != want {
		return &BufferSizeError{Op: "UpdatePartialFrame", Want: want, Got: len(buf)}
	}

	eh := errorHandler{d: d}
	updatePartialFrame(&eh, buf, x, y, w, h)
	return eh.err
}

// UpdateColorFrame writes both bit-planes to their RAM banks.
func (d *Dev) UpdateColorFrame(black, chromatic []byte) error {
	if err := d.UpdateAchromaticFrame(black); err != nil {
		return err
	}
	return d.UpdateChromaticFrame(chromatic)
}

// UpdateAchromaticFrame writes only the black/white plane.
//
// Finish by calling UpdateChromaticFrame.
func (d *Dev) UpdateAchromaticFrame(black []byte) error {
	if err := d.ready("UpdateAchromaticFrame"); err != nil {
		return err
	}
	if err := d.checkPlane("UpdateAchromaticFrame", black); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	updateAchromaticFrame(&eh, black, &d.opts)
	return eh.err
}

// UpdateChromaticFrame writes only the red/yellow plane. A set bit renders
// in the chromatic color and takes precedence over the black/white plane.
func (d *Dev) UpdateChromaticFrame(chromatic []byte) error {
	if err := d.ready("UpdateChromaticFrame"); err != nil {
		return err
	}
	if err := d.checkPlane("UpdateChromaticFrame", chromatic); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	updateChromaticFrame(&eh, chromatic, d.opts.Revision.invertChromatic, &d.opts)
	return eh.err
}

// DisplayFrame commits the staged RAM content to the panel and blocks until
// the refresh finishes.
func (d *Dev) DisplayFrame() error {
	if err := d.ready("DisplayFrame"); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	displayFrame(&eh, d.opts.Revision)
	return eh.err
}

// UpdateAndDisplayFrame is UpdateFrame followed by DisplayFrame.
func (d *Dev) UpdateAndDisplayFrame(buf []byte) error {
	if err := d.UpdateFrame(buf); err != nil {
		return err
	}
	return d.DisplayFrame()
}

// ClearFrame fills both RAM banks with the background color. The result
// becomes visible on the next DisplayFrame.
func (d *Dev) ClearFrame() error {
	if err := d.ready("ClearFrame"); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	clearFrame(&eh, d.color.fillByte(), d.mode, &d.opts)
	return eh.err
}

// SetLUT selects the waveform for the requested update mode and programs it
// into the LUT register. On revisions without LUT access selecting Full is a
// no-op and selecting Partial fails.
func (d *Dev) SetLUT(mode PartialUpdate) error {
	if err := d.ready("SetLUT"); err != nil {
		return err
	}
	if !d.opts.Revision.supportsLUT {
		if mode == Partial {
			return fmt.Errorf("epd2in13b: SetLUT: %w", ErrUnsupported)
		}
		return nil
	}

	lut := d.opts.FullUpdate
	if mode == Partial {
		lut = d.opts.PartialUpdate
	}
	if len(lut) < lutSize {
		return fmt.Errorf("epd2in13b: SetLUT: waveform table has %d bytes, need %d", len(lut), lutSize)
	}

	eh := errorHandler{d: d}
	setLut(&eh, lut)

	if eh.err != nil {
		return eh.err
	}
	d.mode = mode
	return nil
}

// UpdateMode returns the refresh mode selected by the last SetLUT.
func (d *Dev) UpdateMode() PartialUpdate {
	return d.mode
}

// ColorModel returns a 1Bit color model.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the bounds for the configurated display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Draw draws the given image to the black/white plane and refreshes the
// panel. The chromatic bank is mirrored to the background color.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if err := d.ready("Draw"); err != nil {
		return err
	}

	draw.Src.Draw(d.buffer, dstRect, src, srcPts)

	if err := d.UpdateFrame(packPlane(d.buffer, d.opts.Width, d.opts.Height)); err != nil {
		return err
	}
	return d.DisplayFrame()
}

// DrawColor renders two images and refreshes the panel: dark pixels of black
// come out black, dark pixels of chromatic come out in the chromatic color.
func (d *Dev) DrawColor(black, chromatic image.Image) error {
	bw := packImage(black, d.opts.Width, d.opts.Height, false)
	red := packImage(chromatic, d.opts.Width, d.opts.Height, true)

	if err := d.UpdateColorFrame(bw, red); err != nil {
		return err
	}
	return d.DisplayFrame()
}

// Halt puts the display into deep sleep. It implements conn.Resource.
func (d *Dev) Halt() error {
	if d.state != StateReady {
		return nil
	}
	return d.Sleep()
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
