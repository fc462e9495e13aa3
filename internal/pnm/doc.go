// Package pnm writes and reads the plain-text Netpbm raster formats.
//
// Two variants are produced, chosen by the sample type of the buffer:
//
//	P3  three-channel color, one "r g b" group per pixel
//	P2  single-channel gray
//
// A file is three header lines (magic, "width height", max value) followed
// by one text line per image row with samples separated by single spaces.
package pnm
