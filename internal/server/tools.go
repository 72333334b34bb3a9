package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image and Conversion
		{
			Name:        "pbn_load",
			Description: "Load a source image from base64 data. Sets it as the session's active image; a later pbn_convert always works from these original bytes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Display name for the session (used as the default save name)",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Image file contents, base64-encoded. PNG, JPEG, GIF and WebP are accepted.",
					},
				},
				"required": []string{"image_base64"},
			},
		},
		{
			Name:        "pbn_convert",
			Description: "Convert the loaded image into a paint-by-number board: extract a palette, tessellate the canvas, and assign each cell its nearest palette code. Re-converting replaces the board and clears all fills.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid_type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"square", "diamond", "honeycomb"},
						"description": "Tessellation shape. Default square",
						"default":     "square",
					},
					"cell_size": map[string]interface{}{
						"type":        "integer",
						"description": "Cell pitch in pixels. Default 24",
						"default":     24,
					},
					"palette_size": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of palette colors (1-64). Default 16",
						"default":     16,
					},
					"palette_strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"kmeans", "mediancut"},
						"description": "Color quantization strategy. Default kmeans",
						"default":     "kmeans",
					},
					"dither": map[string]interface{}{
						"type":        "boolean",
						"description": "Diffuse quantization error across pixels before cells are colored. Default false",
						"default":     false,
					},
					"dither_strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"floyd-steinberg", "bayer"},
						"description": "Dithering algorithm when dither is true. Default floyd-steinberg",
						"default":     "floyd-steinberg",
					},
					"dedup_threshold": map[string]interface{}{
						"type":        "number",
						"description": "RGB distance under which near-identical palette colors merge. 0 keeps the built-in default",
					},
					"white_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Lightness (0-1) at which a pale palette entry becomes unlabeled background. 0 keeps the built-in default",
					},
					"preblur_sigma": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before quantization to suppress noise. 0 disables",
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the image so neither side exceeds this many pixels. 0 disables",
					},
				},
			},
		},
		{
			Name:        "pbn_result",
			Description: "Get the full conversion result: grid parameters, palette, and every cell with its lattice coordinates, centroid and palette code.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "pbn_palette",
			Description: "Get the current palette: one entry per code with color, hex value, printed label and pixel population. Background entries carry no label.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Filling
		{
			Name:        "pbn_fill",
			Description: "Fill one cell with a palette code. The fill is recorded only when the code matches the cell's assigned code, like painting inside the lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Cell column in lattice coordinates",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Cell row in lattice coordinates",
					},
					"code": map[string]interface{}{
						"type":        "integer",
						"description": "Palette code to paint with",
					},
				},
				"required": []string{"x", "y", "code"},
			},
		},
		{
			Name:        "pbn_unfill",
			Description: "Clear the fill of one cell.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Cell column in lattice coordinates",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Cell row in lattice coordinates",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "pbn_fill_batch",
			Description: "Fill many cells in one call. Returns how many fills actually applied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fills": map[string]interface{}{
						"type":        "array",
						"description": "Cells to fill",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":    map[string]interface{}{"type": "integer"},
								"y":    map[string]interface{}{"type": "integer"},
								"code": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y", "code"},
						},
					},
				},
				"required": []string{"fills"},
			},
		},
		{
			Name:        "pbn_reset_fills",
			Description: "Clear every fill, returning the board to its unpainted state.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "pbn_progress",
			Description: "Report completion: cells filled out of total, overall percentage, and a per-code breakdown.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Rendering
		{
			Name:        "pbn_render_outline",
			Description: "Render the unpainted board as a PNG: white canvas, cell outlines, and each cell's code printed at its center.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Output resolution multiplier (1-8). Small cells need 2x or more for readable labels. Default 1",
						"default":     1,
					},
					"outline_color": map[string]interface{}{
						"type":        "string",
						"description": "Cell border color as #RRGGBB. Default medium gray",
					},
					"hide_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Omit code labels. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "pbn_render_preview",
			Description: "Render work in progress as a PNG: filled cells painted in their palette color, unfilled cells shown as outlines with labels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Output resolution multiplier (1-8). Default 1",
						"default":     1,
					},
					"outline_color": map[string]interface{}{
						"type":        "string",
						"description": "Cell border color as #RRGGBB. Default medium gray",
					},
					"hide_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Omit code labels on unfilled cells. Default false",
						"default":     false,
					},
				},
			},
		},

		// Analysis
		{
			Name:        "pbn_analyze_colors",
			Description: "Find the dominant colors of the loaded image before committing to a conversion. Useful for choosing a palette size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "How many dominant colors to report (1-64). Default 8",
						"default":     8,
					},
				},
			},
		},
		{
			Name:        "pbn_error_report",
			Description: "Measure how faithfully the current board reproduces the source image: per-pixel and per-cell quantization error, plus a neighborhood error that rewards dithering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Persistence
		{
			Name:        "pbn_save_session",
			Description: "Save the session (image, board and fills) under a name. Saving an existing name overwrites it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name to save under. Defaults to the name given at pbn_load",
					},
				},
			},
		},
		{
			Name:        "pbn_load_session",
			Description: "Replace the live session with a previously saved one, including its fills.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the saved session",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "pbn_list_sessions",
			Description: "List saved sessions with their board shape and completion state.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "pbn_delete_session",
			Description: "Delete a saved session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the saved session",
					},
				},
				"required": []string{"name"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
