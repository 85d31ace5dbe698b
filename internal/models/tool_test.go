package models

import (
	"errors"
	"testing"
)

func TestParseTool(t *testing.T) {
	tests := []struct {
		input   string
		want    Tool
		wantErr bool
	}{
		{input: "gofmt", want: ToolGofmt},
		{input: "  GoImports ", want: ToolGoimports},
		{input: "multilint", want: ToolMultilint},
		{input: "black", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTool(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTool) {
					t.Errorf("ParseTool(%q) error = %v, want ErrUnknownTool", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTool(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTool(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultOrderIsFresh(t *testing.T) {
	first := DefaultOrder()
	first[0] = ToolMultilint

	second := DefaultOrder()
	if second[0] != ToolModfmt {
		t.Errorf("DefaultOrder()[0] = %q after caller mutation, want %q", second[0], ToolModfmt)
	}
	for _, tool := range second {
		if tool == ToolMultilint {
			t.Error("DefaultOrder() must not contain the multilint identifier")
		}
	}
}

func TestParseTools(t *testing.T) {
	tools, err := ParseTools([]string{"vet", "gofmt"})
	if err != nil {
		t.Fatalf("ParseTools() error = %v", err)
	}
	if len(tools) != 2 || tools[0] != ToolVet || tools[1] != ToolGofmt {
		t.Errorf("ParseTools() = %v", tools)
	}

	if _, err := ParseTools([]string{"vet", "pylint"}); err == nil {
		t.Error("ParseTools() should fail on unknown names")
	}
}
