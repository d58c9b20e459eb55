// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in13b

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBorderWaveformEncode(t *testing.T) {
	for _, tc := range []struct {
		name string
		bw   borderWaveform
		want byte
	}{
		{
			name: "init defaults",
			bw:   borderWaveform{vbd: vbdGS, fixLevel: fixLevelVSS, gsTrans: gsLUT3},
			want: 0x03,
		},
		{
			name: "vcom with vsh1",
			bw:   borderWaveform{vbd: vbdVcom, fixLevel: fixLevelVSH1, gsTrans: gsLUT0},
			want: 0x90,
		},
		{
			name: "all zero",
			bw:   borderWaveform{},
			want: 0x00,
		},
		{
			name: "hiz vsh2 lut2",
			bw:   borderWaveform{vbd: vbdHiZ, fixLevel: fixLevelVSH2, gsTrans: gsLUT2},
			want: 0xF2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.bw.encode(); got != tc.want {
				t.Errorf("encode() = %#02x, want %#02x", got, tc.want)
			}
		})
	}
}

func TestDriverOutputEncode(t *testing.T) {
	for _, tc := range []struct {
		name string
		out  driverOutput
		want []byte
	}{
		{
			name: "full panel",
			out: driverOutput{
				scanLength:    249,
				scanIsLinear:  true,
				scanG0IsFirst: true,
				scanDirIncr:   true,
			},
			want: []byte{0xF9, 0x00, 0x00},
		},
		{
			name: "flags are stored inverted",
			out:  driverOutput{scanLength: 249},
			want: []byte{0xF9, 0x00, 0x07},
		},
		{
			name: "scan length above one byte",
			out: driverOutput{
				scanLength:    300,
				scanIsLinear:  true,
				scanG0IsFirst: true,
				scanDirIncr:   false,
			},
			want: []byte{0x2C, 0x01, 0x01},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.out.encode(), tc.want); diff != "" {
				t.Errorf("encode() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDataEntryMode(t *testing.T) {
	for _, tc := range []struct {
		name string
		incr dataEntryIncr
		dir  dataEntryDir
		want byte
	}{
		{name: "x incr y incr x major", incr: xIncrYIncr, dir: entryXDir, want: 0x03},
		{name: "x decr y incr y major", incr: xDecrYIncr, dir: entryYDir, want: 0x06},
		{name: "x decr y decr", incr: xDecrYDecr, dir: entryXDir, want: 0x00},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := dataEntryMode(tc.incr, tc.dir); got != tc.want {
				t.Errorf("dataEntryMode() = %#02x, want %#02x", got, tc.want)
			}
		})
	}
}

func TestUpdateControl2(t *testing.T) {
	full := updateControl2(0).
		enableClock().
		enableAnalog().
		loadLUT().
		loadTemperature().
		display().
		disableAnalog().
		disableClock()
	if got := full.encode(); got != 0xF7 {
		t.Errorf("full refresh flags = %#02x, want 0xF7", got)
	}

	powerOnly := updateControl2(0).enableClock().enableAnalog()
	if got := powerOnly.encode(); got != 0xC0 {
		t.Errorf("power-up flags = %#02x, want 0xC0", got)
	}

	// Composition order must not matter, only the final bit state does.
	a := updateControl2(0).display().enableClock().disableAnalog()
	b := updateControl2(0).disableAnalog().display().enableClock()
	if a != b {
		t.Errorf("flag composition is order dependent: %#02x != %#02x", a.encode(), b.encode())
	}
}
