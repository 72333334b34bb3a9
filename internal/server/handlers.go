package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/cenkalti/dominantcolor"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
	"github.com/ironsheep/paintbynum-mcp/internal/render"
	"github.com/ironsheep/paintbynum-mcp/internal/session"
	"github.com/ironsheep/paintbynum-mcp/internal/store"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pbn_load", "pbn_convert").
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
//  2. Applies default values for optional parameters
//  3. Reads or mutates the live session
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image and Conversion
	case "pbn_load":
		return s.handleLoad(args)
	case "pbn_convert":
		return s.handleConvert(args)
	case "pbn_result":
		return s.handleResult(args)
	case "pbn_palette":
		return s.handlePalette(args)

	// Filling
	case "pbn_fill":
		return s.handleFill(args)
	case "pbn_unfill":
		return s.handleUnfill(args)
	case "pbn_fill_batch":
		return s.handleFillBatch(args)
	case "pbn_reset_fills":
		return s.handleResetFills(args)
	case "pbn_progress":
		return s.handleProgress(args)

	// Rendering
	case "pbn_render_outline":
		return s.handleRenderOutline(args)
	case "pbn_render_preview":
		return s.handleRenderPreview(args)

	// Analysis
	case "pbn_analyze_colors":
		return s.handleAnalyzeColors(args)
	case "pbn_error_report":
		return s.handleErrorReport(args)

	// Persistence
	case "pbn_save_session":
		return s.handleSaveSession(args)
	case "pbn_load_session":
		return s.handleLoadSession(args)
	case "pbn_list_sessions":
		return s.handleListSessions(args)
	case "pbn_delete_session":
		return s.handleDeleteSession(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// requireStore guards the persistence tools when the server runs without
// a database.
func (s *Server) requireStore() (*store.Store, error) {
	if s.store == nil {
		return nil, fmt.Errorf("session storage is disabled")
	}
	return s.store, nil
}

func hexColor(c palette.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// === Image and Conversion Handlers ===

type loadArgs struct {
	Name        string `json:"name"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a loadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ImageBase64 == "" {
		return nil, fmt.Errorf("image_base64 is required")
	}
	data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("image_base64 is not valid base64: %w", err)
	}
	if s.cfg.MaxImageBytes > 0 && int64(len(data)) > s.cfg.MaxImageBytes {
		return nil, fmt.Errorf("image is %d bytes, limit is %d", len(data), s.cfg.MaxImageBytes)
	}
	if a.Name == "" {
		a.Name = "untitled"
	}

	w, h, err := s.session.LoadImage(a.Name, data)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":   a.Name,
		"width":  w,
		"height": h,
		"bytes":  len(data),
	}, nil
}

type convertArgs struct {
	GridType        string  `json:"grid_type"`
	CellSize        int     `json:"cell_size"`
	PaletteSize     int     `json:"palette_size"`
	PaletteStrategy string  `json:"palette_strategy"`
	Dither          *bool   `json:"dither,omitempty"`
	DitherStrategy  string  `json:"dither_strategy"`
	DedupThreshold  float64 `json:"dedup_threshold"`
	WhiteThreshold  float64 `json:"white_threshold"`
	PreblurSigma    float64 `json:"preblur_sigma"`
	MaxDimension    int     `json:"max_dimension"`
}

// buildConvertConfig starts from the server's configured defaults and
// overrides whatever the request supplied.
func (s *Server) buildConvertConfig(a convertArgs) convert.Config {
	cfg := s.cfg.Convert
	if a.GridType != "" {
		cfg.GridType = a.GridType
	}
	if a.CellSize != 0 {
		cfg.CellSize = a.CellSize
	}
	if a.PaletteSize != 0 {
		cfg.PaletteSize = a.PaletteSize
	}
	if a.PaletteStrategy != "" {
		cfg.PaletteStrategy = a.PaletteStrategy
	}
	if a.Dither != nil {
		cfg.Dither = *a.Dither
	}
	if a.DitherStrategy != "" {
		cfg.DitherStrategy = a.DitherStrategy
	}
	if a.DedupThreshold != 0 {
		cfg.DedupThreshold = a.DedupThreshold
	}
	if a.WhiteThreshold != 0 {
		cfg.WhiteThreshold = a.WhiteThreshold
	}
	if a.PreblurSigma != 0 {
		cfg.PreblurSigma = a.PreblurSigma
	}
	if a.MaxDimension != 0 {
		cfg.MaxDimension = a.MaxDimension
	}
	return cfg
}

func (s *Server) handleConvert(args json.RawMessage) (interface{}, error) {
	var a convertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, err := s.session.Convert(context.Background(), s.buildConvertConfig(a))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"grid_type":    string(res.GridType),
		"cell_size":    res.CellSize,
		"width":        res.Width,
		"height":       res.Height,
		"cell_count":   res.CellCount(),
		"palette_size": res.Palette.Len(),
		"dithered":     res.Dithered,
	}, nil
}

func (s *Server) handleResult(json.RawMessage) (interface{}, error) {
	return s.session.Result()
}

type paletteEntryInfo struct {
	Code       int           `json:"code"`
	Label      string        `json:"label,omitempty"`
	Hex        string        `json:"hex"`
	Color      palette.Color `json:"color"`
	Population int           `json:"population"`
	Background bool          `json:"background,omitempty"`
}

func (s *Server) handlePalette(json.RawMessage) (interface{}, error) {
	res, err := s.session.Result()
	if err != nil {
		return nil, err
	}

	entries := make([]paletteEntryInfo, res.Palette.Len())
	for i := range entries {
		code := palette.Code(i)
		c := res.Palette.Color(code)
		entries[i] = paletteEntryInfo{
			Code:       i,
			Label:      res.Palette.Label(code),
			Hex:        hexColor(c),
			Color:      c,
			Population: res.Palette.Entries[i].Population,
			Background: res.Palette.Background(code),
		}
	}
	return map[string]interface{}{
		"size":    len(entries),
		"entries": entries,
	}, nil
}

// === Filling Handlers ===

type fillArgs struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Code int `json:"code"`
}

func (s *Server) handleFill(args json.RawMessage) (interface{}, error) {
	var a fillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Code < 0 || a.Code >= palette.MaxColors {
		return nil, fmt.Errorf("code %d out of range", a.Code)
	}

	applied, err := s.session.Fill(a.X, a.Y, palette.Code(a.Code))
	if err != nil {
		return nil, err
	}
	prog, err := s.session.Progress()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"applied":  applied,
		"progress": prog,
	}, nil
}

type unfillArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleUnfill(args json.RawMessage) (interface{}, error) {
	var a unfillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	removed, err := s.session.Unfill(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	prog, err := s.session.Progress()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"removed":  removed,
		"progress": prog,
	}, nil
}

type fillBatchArgs struct {
	Fills []session.FillPoint `json:"fills"`
}

func (s *Server) handleFillBatch(args json.RawMessage) (interface{}, error) {
	var a fillBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Fills) == 0 {
		return nil, fmt.Errorf("fills is empty")
	}

	applied, err := s.session.FillBatch(a.Fills)
	if err != nil {
		return nil, err
	}
	prog, err := s.session.Progress()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"applied":  applied,
		"progress": prog,
	}, nil
}

func (s *Server) handleResetFills(json.RawMessage) (interface{}, error) {
	if err := s.session.ResetFills(); err != nil {
		return nil, err
	}
	prog, err := s.session.Progress()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"progress": prog,
	}, nil
}

func (s *Server) handleProgress(json.RawMessage) (interface{}, error) {
	prog, err := s.session.Progress()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// === Rendering Handlers ===

type renderArgs struct {
	Scale        int    `json:"scale"`
	OutlineColor string `json:"outline_color"`
	HideLabels   bool   `json:"hide_labels"`
}

func (a renderArgs) options() render.Options {
	scale := a.Scale
	if scale == 0 {
		scale = 1
	}
	return render.Options{
		Scale:      scale,
		OutlineHex: a.OutlineColor,
		HideLabels: a.HideLabels,
	}
}

func (s *Server) handleRenderOutline(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.session.Result()
	if err != nil {
		return nil, err
	}
	return render.Outline(res, a.options())
}

func (s *Server) handleRenderPreview(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.session.Result()
	if err != nil {
		return nil, err
	}
	return render.Preview(res, s.session.FilledKeys(), a.options())
}

// === Analysis Handlers ===

type analyzeColorsArgs struct {
	Count int `json:"count"`
}

type dominantColorInfo struct {
	Hex    string        `json:"hex"`
	Color  palette.Color `json:"color"`
	Weight float64       `json:"weight"`
}

func (s *Server) handleAnalyzeColors(args json.RawMessage) (interface{}, error) {
	var a analyzeColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 8
	}
	if a.Count < 1 || a.Count > palette.MaxColors {
		return nil, fmt.Errorf("count %d out of range 1..%d", a.Count, palette.MaxColors)
	}

	data, err := s.session.SourceBytes()
	if err != nil {
		return nil, err
	}
	img, err := convert.Decode(data)
	if err != nil {
		return nil, err
	}

	found := dominantcolor.FindWeight(img, a.Count)
	colors := make([]dominantColorInfo, 0, len(found))
	for _, c := range found {
		pc := palette.Color{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B}
		colors = append(colors, dominantColorInfo{
			Hex:    hexColor(pc),
			Color:  pc,
			Weight: c.Weight,
		})
	}
	return map[string]interface{}{
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
		"colors": colors,
	}, nil
}

func (s *Server) handleErrorReport(json.RawMessage) (interface{}, error) {
	res, err := s.session.Result()
	if err != nil {
		return nil, err
	}
	cfg, err := s.session.Config()
	if err != nil {
		return nil, err
	}
	data, err := s.session.SourceBytes()
	if err != nil {
		return nil, err
	}
	report, err := convert.QuantizationErrorFromBytes(data, cfg, res)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// === Persistence Handlers ===

type sessionNameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleSaveSession(args json.RawMessage) (interface{}, error) {
	st, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	var a sessionNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	snap, err := s.session.Snapshot()
	if err != nil {
		return nil, err
	}
	if a.Name != "" {
		snap.Name = a.Name
	}
	if err := st.Save(snap); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":  snap.Name,
		"saved": true,
	}, nil
}

func (s *Server) handleLoadSession(args json.RawMessage) (interface{}, error) {
	st, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	var a sessionNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	snap, err := st.Load(a.Name)
	if err != nil {
		return nil, err
	}
	if err := s.session.Restore(snap); err != nil {
		return nil, err
	}

	prog, err := s.session.Progress()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":         snap.Name,
		"grid_type":    string(snap.Result.GridType),
		"cell_size":    snap.Result.CellSize,
		"width":        snap.Result.Width,
		"height":       snap.Result.Height,
		"cell_count":   snap.Result.CellCount(),
		"palette_size": snap.Result.Palette.Len(),
		"progress":     prog,
	}, nil
}

func (s *Server) handleListSessions(json.RawMessage) (interface{}, error) {
	st, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	infos, err := st.List()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"count":    len(infos),
		"sessions": infos,
	}, nil
}

func (s *Server) handleDeleteSession(args json.RawMessage) (interface{}, error) {
	st, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	var a sessionNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if err := st.Delete(a.Name); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":    a.Name,
		"deleted": true,
	}, nil
}
