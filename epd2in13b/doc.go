// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd2in13b controls the Waveshare 2.13 inch B tri-color e-paper
// display.
//
// The panel shows black, white and one chromatic color (red or yellow) from
// two bit-planes held in separate controller RAM banks. Both the V3 and the
// V4 HAT revisions are supported through a shared refresh state machine; the
// revision differences (LUT register access, partial refresh, chromatic bank
// polarity) are carried as data in a Revision value.
//
// Datasheet:
//
// https://www.waveshare.com/w/upload/5/59/2.13inch_e-Paper_%28B%29_V4_Specification.pdf
//
// Product page:
//
// https://www.waveshare.com/wiki/Pico-ePaper-2.13-B
package epd2in13b
