// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epdsim

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testDev(w, h int) (*Dev, *bytes.Buffer) {
	d := New(&Opts{Width: w, Height: h})
	buf := &bytes.Buffer{}
	d.w = buf
	return d, buf
}

func TestNew(t *testing.T) {
	d, _ := testDev(4, 2)

	if got, want := d.String(), "EPDSim{4, 2}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if diff := cmp.Diff(d.Bounds(), image.Rect(0, 0, 4, 2)); diff != "" {
		t.Errorf("Bounds() difference (-got +want):\n%s", diff)
	}
}

func TestColorModel(t *testing.T) {
	d, _ := testDev(1, 1)
	model := d.ColorModel()

	for _, tc := range []struct {
		name string
		in   color.Color
		want color.NRGBA
	}{
		{name: "white", in: color.White, want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "black", in: color.Black, want: color.NRGBA{A: 255}},
		{name: "red", in: color.NRGBA{R: 200, G: 10, B: 10, A: 255}, want: color.NRGBA{R: 255, A: 255}},
		{name: "light gray snaps to white", in: color.NRGBA{R: 220, G: 220, B: 220, A: 255}, want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := model.Convert(tc.in); got != color.Color(tc.want) {
				t.Errorf("Convert(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	d, buf := testDev(2, 2)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.Black)
	src.Set(1, 0, color.White)
	src.Set(0, 1, color.NRGBA{R: 255, A: 255})
	src.Set(1, 1, color.Black)

	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	if diff := cmp.Diff(d.pixels, []byte{1, 0, 2, 1}); diff != "" {
		t.Errorf("pixel index difference (-got +want):\n%s", diff)
	}
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("first frame emitted %d rows, want 2", got)
	}

	// The second frame rewinds the cursor before repainting.
	buf.Reset()
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\033[2A") {
		t.Errorf("second frame does not rewind the cursor: %q", buf.String())
	}
}

func TestDrawClipped(t *testing.T) {
	d, _ := testDev(4, 4)

	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.Black)
		}
	}

	if err := d.Draw(image.Rect(2, 2, 4, 4), src, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	want := []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
	}
	if diff := cmp.Diff(d.pixels, want); diff != "" {
		t.Errorf("pixel index difference (-got +want):\n%s", diff)
	}
}

func TestHalt(t *testing.T) {
	d, buf := testDev(1, 1)
	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() failed: %v", err)
	}
	if got, want := buf.String(), "\n\033[0m"; got != want {
		t.Errorf("Halt() wrote %q, want %q", got, want)
	}
}
