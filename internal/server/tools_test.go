package server

import (
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"pbn_load",
		"pbn_convert",
		"pbn_result",
		"pbn_palette",
		"pbn_fill",
		"pbn_unfill",
		"pbn_fill_batch",
		"pbn_reset_fills",
		"pbn_progress",
		"pbn_render_outline",
		"pbn_render_preview",
		"pbn_analyze_colors",
		"pbn_error_report",
		"pbn_save_session",
		"pbn_load_session",
		"pbn_list_sessions",
		"pbn_delete_session",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool name %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if !strings.HasPrefix(tool.Name, "pbn_") {
				t.Errorf("Tool name %s missing pbn_ prefix", tool.Name)
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

// TestToolDefinitions_Dispatch ensures every advertised tool is actually
// routed by executeTool: a defined-but-unrouted tool would answer every
// call with "unknown tool".
func TestToolDefinitions_Dispatch(t *testing.T) {
	s := newTestServer(t)

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, []byte(`{}`))
			if err != nil && strings.Contains(err.Error(), "unknown tool") {
				t.Errorf("tool %s is defined but not dispatched", tool.Name)
			}
		})
	}
}

func TestToolDefinitions_RequiredFields(t *testing.T) {
	required := map[string][]string{
		"pbn_load":           {"image_base64"},
		"pbn_fill":           {"x", "y", "code"},
		"pbn_unfill":         {"x", "y"},
		"pbn_fill_batch":     {"fills"},
		"pbn_load_session":   {"name"},
		"pbn_delete_session": {"name"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, wantRequired := range required {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("Tool %s not found", name)
			continue
		}

		t.Run(name, func(t *testing.T) {
			reqList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			have := make(map[string]bool)
			for _, r := range reqList {
				have[r] = true
			}
			for _, want := range wantRequired {
				if !have[want] {
					t.Errorf("'%s' should be required", want)
				}
			}
		})
	}
}

func TestToolDefinitions_ConvertEnums(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "pbn_convert" {
			tool = tt
			break
		}
	}
	if tool.Name == "" {
		t.Fatal("pbn_convert tool not found")
	}

	props, ok := tool.InputSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties should be a map")
	}

	enums := map[string][]string{
		"grid_type":        {"square", "diamond", "honeycomb"},
		"palette_strategy": {"kmeans", "mediancut"},
		"dither_strategy":  {"floyd-steinberg", "bayer"},
	}

	for propName, expected := range enums {
		prop, ok := props[propName].(map[string]interface{})
		if !ok {
			t.Errorf("%s property should exist and be a map", propName)
			continue
		}
		enum, ok := prop["enum"].([]string)
		if !ok {
			t.Errorf("%s should have an enum", propName)
			continue
		}
		enumMap := make(map[string]bool)
		for _, e := range enum {
			enumMap[e] = true
		}
		for _, want := range expected {
			if !enumMap[want] {
				t.Errorf("%s enum missing '%s'", propName, want)
			}
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"pbn_convert": {
			"grid_type":        "square",
			"cell_size":        24,
			"palette_size":     16,
			"palette_strategy": "kmeans",
			"dither":           false,
			"dither_strategy":  "floyd-steinberg",
		},
		"pbn_render_outline": {"scale": 1},
		"pbn_render_preview": {"scale": 1},
		"pbn_analyze_colors": {"count": 8},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}
			if actualDefault != expectedDefault {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expectedDefault)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
