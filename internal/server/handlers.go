package server

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/edgemap/internal/pipeline"
	"github.com/ironsheep/edgemap/internal/raster"
	"github.com/ironsheep/edgemap/internal/source"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "raster_load", "raster_export").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies server defaults for optional parameters
//  3. Loads the image from cache (decoding on first use)
//  4. Calls the appropriate pipeline function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "raster_load":
		return s.handleRasterLoad(args)
	case "raster_export":
		return s.handleRasterExport(args)
	case "raster_sample_pixel":
		return s.handleRasterSamplePixel(args)
	case "raster_preview":
		return s.handleRasterPreview(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// A marshal error is dropped and yields an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared argument handling ===

type loadArgs struct {
	Path         string `json:"path"`
	MaxDimension *int   `json:"max_dimension"`
}

type edgeArgs struct {
	Border  *int   `json:"border"`
	Kernels string `json:"kernels"`
}

// load resolves load options against the server defaults and returns the
// cached image.
func (s *Server) load(a loadArgs) (*pipeline.Image, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	opts := pipeline.LoadOptions{MaxDimension: s.cfg.MaxDimension}
	if a.MaxDimension != nil {
		if *a.MaxDimension < 0 {
			return nil, fmt.Errorf("max_dimension must not be negative, got %d", *a.MaxDimension)
		}
		opts.MaxDimension = *a.MaxDimension
	}
	return s.cache.Load(a.Path, opts)
}

// sobelOptions resolves edge arguments against the server defaults.
func (s *Server) sobelOptions(a edgeArgs) (raster.SobelOptions, error) {
	opts := s.cfg.SobelOptions()
	if a.Border != nil {
		if *a.Border < 0 || *a.Border > raster.MaxValue {
			return opts, fmt.Errorf("border must be in 0-255, got %d", *a.Border)
		}
		opts.Border = raster.Luma(*a.Border)
	}
	if a.Kernels != "" {
		k, ok := raster.KernelsByName(a.Kernels)
		if !ok {
			return opts, fmt.Errorf("unknown kernels: %s", a.Kernels)
		}
		opts.Kernels = k
	}
	return opts, nil
}

// === raster_load ===

// LoadResult describes a decoded image.
type LoadResult struct {
	Path          string `json:"path"`
	Width         uint32 `json:"width"`
	Height        uint32 `json:"height"`
	MaxValue      uint32 `json:"max_value"`
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

func (s *Server) handleRasterLoad(args json.RawMessage) (interface{}, error) {
	var a loadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &LoadResult{
		Path:          a.Path,
		Width:         img.Width(),
		Height:        img.Height(),
		MaxValue:      img.Color.Max,
		Format:        source.FormatJPEG,
		FileSizeBytes: stat.Size(),
	}, nil
}

// === raster_export ===

type rasterExportArgs struct {
	loadArgs
	edgeArgs
	Output string `json:"output"`
	Stage  string `json:"stage"`
}

func (s *Server) handleRasterExport(args json.RawMessage) (interface{}, error) {
	var a rasterExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	stage, err := pipeline.ParseStage(a.Stage)
	if err != nil {
		return nil, err
	}
	opts, err := s.sobelOptions(a.edgeArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.loadArgs)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Export(img, stage, a.Output, pipeline.ExportOptions{Sobel: opts})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("exported", "path", a.Path, "output", a.Output, "stage", stage, "bytes", res.Bytes)
	return res, nil
}

// === raster_sample_pixel ===

type rasterSampleArgs struct {
	loadArgs
	edgeArgs
	X int `json:"x"`
	Y int `json:"y"`
}

// RGBValue is an 8-bit color without alpha.
type RGBValue struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLValue is a color in HSL space: hue in degrees, saturation and lightness
// in percent.
type HSLValue struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// SampleResult reports every representation of one pixel.
type SampleResult struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	RGB      RGBValue `json:"rgb"`
	Hex      string   `json:"hex"`
	HSL      HSLValue `json:"hsl"`
	Luma     uint8    `json:"luma"`
	Gradient uint8    `json:"gradient"`
	Border   bool     `json:"border"`
	GX       int32    `json:"gx"`
	GY       int32    `json:"gy"`
}

func (s *Server) handleRasterSamplePixel(args json.RawMessage) (interface{}, error) {
	var a rasterSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.sobelOptions(a.edgeArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.loadArgs)
	if err != nil {
		return nil, err
	}
	if !img.Color.InBounds(a.X, a.Y) {
		return nil, fmt.Errorf("coordinates (%d, %d) outside image bounds (0-%d, 0-%d)",
			a.X, a.Y, img.Width()-1, img.Height()-1)
	}

	return samplePixel(img, a.X, a.Y, opts), nil
}

func samplePixel(img *pipeline.Image, x, y int, opts raster.SobelOptions) *SampleResult {
	p := img.Color.At(x, y)
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	h, sat, l := c.Hsl()

	res := &SampleResult{
		X:   x,
		Y:   y,
		RGB: RGBValue{R: p.R, G: p.G, B: p.B},
		Hex: c.Hex(),
		HSL: HSLValue{
			H: int(math.Round(h)),
			S: int(math.Round(sat * 100)),
			L: int(math.Round(l * 100)),
		},
		Luma: uint8(img.Gray.At(x, y)),
	}

	gx, gy, ok := raster.Gradient(img.Gray, opts.Kernels, x, y)
	if !ok {
		res.Border = true
		res.Gradient = uint8(opts.Border)
		return res
	}
	res.GX, res.GY = gx, gy
	res.Gradient = uint8(raster.Magnitude(gx, gy))
	return res
}

// === raster_preview ===

type rasterPreviewArgs struct {
	loadArgs
	edgeArgs
	Stage string `json:"stage"`
}

func (s *Server) handleRasterPreview(args json.RawMessage) (interface{}, error) {
	var a rasterPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	stage, err := pipeline.ParseStage(a.Stage)
	if err != nil {
		return nil, err
	}
	opts, err := s.sobelOptions(a.edgeArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.loadArgs)
	if err != nil {
		return nil, err
	}

	return pipeline.PreviewBase64(img, stage, pipeline.ExportOptions{Sobel: opts})
}
