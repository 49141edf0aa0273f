// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bring

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent producer/consumer runs, which trigger
// false positives: the detector cannot see the happens-before edges
// established by acquire/release ordering on the cursor pair.
const RaceEnabled = true
