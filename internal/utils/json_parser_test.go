package utils

import (
	"testing"
)

func TestParseAIJSON(t *testing.T) {
	type filters struct {
		Make  string `json:"make"`
		Color string `json:"color"`
	}

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantMake string
	}{
		{
			name:     "Pure JSON",
			input:    `{"make": "BMW", "color": "red"}`,
			wantMake: "BMW",
		},
		{
			name:     "JSON in markdown json block",
			input:    "```json\n{\"make\": \"Toyota\", \"color\": \"blue\"}\n```",
			wantMake: "Toyota",
		},
		{
			name:     "JSON in plain markdown block",
			input:    "```\n{\"make\": \"Honda\", \"color\": \"white\"}\n```",
			wantMake: "Honda",
		},
		{
			name:     "JSON with surrounding text",
			input:    `Here are the filters you asked for: {"make": "Ford", "color": "black"} — let me know!`,
			wantMake: "Ford",
		},
		{
			name:     "Nested braces inside strings",
			input:    `{"make": "BMW", "color": "a{weird}value"}`,
			wantMake: "BMW",
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Whitespace only",
			input:   "   \n\t  ",
			wantErr: true,
		},
		{
			name:    "No JSON at all",
			input:   "I could not find any filters in that description.",
			wantErr: true,
		},
		{
			name:    "Unbalanced braces",
			input:   `{"make": "BMW", "color": "red"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target filters
			err := ParseAIJSON(tt.input, &target)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got result %+v", target)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if target.Make != tt.wantMake {
				t.Errorf("Expected make %q, got %q", tt.wantMake, target.Make)
			}
		})
	}
}

func TestParseAIJSON_NullValues(t *testing.T) {
	var target map[string]*string
	input := `{"make": "BMW", "model": null}`

	if err := ParseAIJSON(input, &target); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if target["make"] == nil || *target["make"] != "BMW" {
		t.Errorf("Expected make BMW, got %v", target["make"])
	}
	if value, ok := target["model"]; !ok || value != nil {
		t.Errorf("Expected model key present with nil value, got %v (present=%v)", value, ok)
	}
}

func TestExtractBalanced(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple object",
			input: `{"a": 1} trailing`,
			want:  `{"a": 1}`,
		},
		{
			name:  "Nested object",
			input: `{"a": {"b": 2}}`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "Brace inside string ignored",
			input: `{"a": "}"}`,
			want:  `{"a": "}"}`,
		},
		{
			name:  "Escaped quote inside string",
			input: `{"a": "he said \"}\""}`,
			want:  `{"a": "he said \"}\""}`,
		},
		{
			name:  "Unbalanced",
			input: `{"a": 1`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractBalanced(tt.input, '{', '}'); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
