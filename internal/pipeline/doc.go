// Package pipeline wires decoding, grayscale reduction, edge detection and
// text serialization into the operations exposed by the CLI and MCP server.
//
// Data flows strictly forward:
//
//	source.Open -> raster.NewRGB -> raster.Grayscale -> raster.Sobel -> pnm.Write
//
// An Image keeps the decoded color buffer together with its grayscale
// reduction, which is computed once at construction and reused by every
// later stage. The edge map depends on SobelOptions and is computed on demand.
//
// # Thread Safety
//
// Image values are read-only after construction. Cache is safe for
// concurrent use.
package pipeline
