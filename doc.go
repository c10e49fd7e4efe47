// Package candycane generates the solid geometry of a 3D printable candy cane
// made of two interleaved colored helical stripes.
//
// Every solid is a signed distance function (see package sdf). A cane half
// is a straight spiral shaft closed by a hemispherical end cap at the bottom,
// continued by a spiral bent into a hook which ends in a second cap. The
// second half is the same construction rotated half a turn so its stripe
// fills the gaps of the first.
//
// Construction is deterministic and free of side effects. Resolution knobs
// live in Config which is passed explicitly to every builder.
package candycane
