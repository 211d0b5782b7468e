// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "gatehouse"
	BannerBlue = `
   oooooo         o0o     oooooooo0 oooooooo
 0oo       o0o0  0o 0o       o0o    ooo
ooo       0oo   oo0  0oo     oo0    oo0
ooo      oo0    oo    oo     oo     oo
ooo  000 ooo   o0oooooo0o    oo     oooooo0
ooo   0o  oo   oo      oo    oo     oo0
ooo   oo   0oo oo      oo    oo     ooo
 oooooo       0oo      oo0   o0     oooooooo
`
	BannerGold = `
ooo  oo  ooooo  oo  oo  oooo  ooooo
ooo  oo o0   0o oo  oo 0o     oo
oo0ooo0 oo    o oo  oo o0o    oooo
oo0  oo oo    o oo  oo   o0o  oo
ooo  oo o0   0o o0  o0     0o oo
ooo  oo  ooooo   o00o  o000o  ooooo   vversion
`
	DocRoot = "https://docs.gatehouse.id/en/latest"
)
