// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestPackPlane(t *testing.T) {
	for _, tc := range []struct {
		name  string
		w, h  int
		pixel []image.Point
		want  []byte
	}{
		{
			name: "empty",
			w:    16,
			h:    2,
			want: []byte{0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "MSB is the leftmost pixel",
			w:     8,
			h:     1,
			pixel: []image.Point{{X: 0, Y: 0}},
			want:  []byte{0x80},
		},
		{
			name:  "row major order",
			w:     16,
			h:     2,
			pixel: []image.Point{{X: 8, Y: 0}, {X: 7, Y: 1}},
			want:  []byte{0x00, 0x80, 0x01, 0x00},
		},
		{
			name:  "width rounds up to whole bytes",
			w:     10,
			h:     1,
			pixel: []image.Point{{X: 9, Y: 0}},
			want:  []byte{0x00, 0x40},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := image1bit.NewVerticalLSB(image.Rect(0, 0, tc.w, tc.h))
			for _, p := range tc.pixel {
				img.SetBit(p.X, p.Y, image1bit.On)
			}
			if diff := cmp.Diff(packPlane(img, tc.w, tc.h), tc.want); diff != "" {
				t.Errorf("packPlane() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestPackImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 2))
	for x := 0; x < 8; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(0, 0, color.Black)
	img.Set(7, 1, color.Black)

	if diff := cmp.Diff(packImage(img, 8, 2, false), []byte{0x7F, 0xFE}); diff != "" {
		t.Errorf("packImage() difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(packImage(img, 8, 2, true), []byte{0x80, 0x01}); diff != "" {
		t.Errorf("packImage(invert) difference (-got +want):\n%s", diff)
	}
}

func TestPackImageOffsetBounds(t *testing.T) {
	// Images whose bounds do not start at the origin are read from their own
	// minimum point.
	img := image.NewRGBA(image.Rect(4, 4, 12, 6))
	for x := 4; x < 12; x++ {
		for y := 4; y < 6; y++ {
			img.Set(x, y, color.Black)
		}
	}
	img.Set(4, 4, color.White)

	if diff := cmp.Diff(packImage(img, 8, 2, false), []byte{0x80, 0x00}); diff != "" {
		t.Errorf("packImage() difference (-got +want):\n%s", diff)
	}
}

func TestDraw(t *testing.T) {
	d, c := testDev(t, Opts{
		Width:            8,
		Height:           4,
		Revision:         RevisionV4,
		FullUpdate:       lutFull,
		PartialUpdate:    lutPartial,
		BusyTimeout:      defaultBusyTimeout,
		BusyPollInterval: defaultBusyPollInterval,
	})
	d.buffer = image1bit.NewVerticalLSB(image.Rect(0, 0, 8, 4))

	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			src.Set(x, y, color.White)
		}
	}
	src.Set(3, 2, color.Black)

	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if len(c.writes) == 0 {
		t.Fatal("Draw() produced no bus traffic")
	}
	if d.buffer.BitAt(3, 2) {
		t.Error("dark source pixel left the buffer bit set")
	}
	if !d.buffer.BitAt(0, 0) {
		t.Error("light source pixel cleared the buffer bit")
	}
}
