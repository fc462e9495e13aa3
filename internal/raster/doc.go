// Package raster provides the in-memory pixel buffers used by the edge map
// pipeline and the two pure transforms that run over them.
//
// All buffers are flat and row-major: the sample for column c of row r lives at
// index r*Width + c. A Buffer is parameterized over its element type so color
// (RGB) and single-channel (Luma) rasters share one container. Format-specific
// behavior such as channel count and text rendering lives on the element type.
//
// # Transforms
//
//   - Grayscale: RGB -> Luma using 0.299*R + 0.587*G + 0.144*B, truncated and
//     saturated to 8 bits. The blue weight of 0.144 (not 0.114) is kept so
//     output matches maps produced by earlier versions of this tool.
//   - Sobel: Luma -> Luma gradient magnitude |gx| + |gy|, clamped to 255.
//     Border pixels are not computed and carry a configurable sentinel.
//
// # Thread Safety
//
// Buffers are not mutated after a transform returns them, so they can be read
// from any number of goroutines. Transforms may split work across rows; every
// output sample depends only on read-only input.
package raster
