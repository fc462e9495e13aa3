package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the JPEG file",
	}
}

func maxDimensionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Optional cap on the longer side; larger images are scaled down before processing. 0 keeps the original size",
		"minimum":     0,
	}
}

func stageProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"color", "gray", "edges"},
		"description": "Which representation to produce: color (P3), gray (P2) or edges (P2 Sobel gradient magnitude)",
	}
}

// edgeProperties are shared by every tool that may run edge detection.
func edgeProperties() map[string]interface{} {
	return map[string]interface{}{
		"border": map[string]interface{}{
			"type":        "integer",
			"description": "Value written to the uncomputed border pixels of the edge map (0-255). Defaults to the server setting, normally 0",
			"minimum":     0,
			"maximum":     255,
		},
		"kernels": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"source", "standard"},
			"description": "Sobel kernel pair. 'source' reproduces earlier edge maps; 'standard' is the textbook operator",
		},
	}
}

func withEdgeProperties(props map[string]interface{}) map[string]interface{} {
	for k, v := range edgeProperties() {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "raster_load",
			Description: "Decode a JPEG file and return its dimensions, channel max value and file size. The decoded raster and its grayscale reduction are cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":          pathProperty(),
					"max_dimension": maxDimensionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_export",
			Description: "Write the color, grayscale or edge-map representation of a JPEG to a plain-text PPM/PGM file (P3 or P2). Returns the output path, header fields and byte count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withEdgeProperties(map[string]interface{}{
					"path": pathProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the text raster to create (overwritten if it exists)",
					},
					"stage":         stageProperty(),
					"max_dimension": maxDimensionProperty(),
				}),
				"required": []string{"path", "output", "stage"},
			},
		},
		{
			Name:        "raster_sample_pixel",
			Description: "Report the color (RGB, hex, HSL), grayscale luma and Sobel gradient at a pixel. Border pixels report the configured border value as their gradient.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withEdgeProperties(map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0 = left edge)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0 = top edge)",
					},
					"max_dimension": maxDimensionProperty(),
				}),
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "raster_preview",
			Description: "Render the color, grayscale or edge-map representation of a JPEG as a base64-encoded PNG for visual inspection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withEdgeProperties(map[string]interface{}{
					"path":          pathProperty(),
					"stage":         stageProperty(),
					"max_dimension": maxDimensionProperty(),
				}),
				"required": []string{"path", "stage"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
