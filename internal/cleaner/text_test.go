package cleaner

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Mixed runs",
			input: "  a\t\tb\n\nc  ",
			want:  "a b c",
		},
		{
			name:  "Already collapsed",
			input: "a b c",
			want:  "a b c",
		},
		{
			name:  "Only whitespace",
			input: " \t\n ",
			want:  "",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
		{
			name:  "Windows newlines",
			input: "a\r\nb",
			want:  "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseWhitespace(tt.input)
			if got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnicode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Composes decomposed accent",
			input: "café", // e + combining acute
			want:  "café",
		},
		{
			name:  "Non-breaking space becomes space",
			input: "a b",
			want:  "a b",
		},
		{
			name:  "BOM removed",
			input: "\ufeffhello",
			want:  "hello",
		},
		{
			name:  "Zero-width characters removed",
			input: "a​b‌c‍d",
			want:  "abcd",
		},
		{
			name:  "Plain ASCII untouched",
			input: "hello",
			want:  "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeUnicode(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeUnicode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHandleSpecialCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  SpecialCharOptions
		want  string
	}{
		{
			name:  "Curly quotes and dashes",
			input: "‘a’ “b” – —",
			opts:  DefaultSpecialCharOptions(),
			want:  `'a' "b" - -`,
		},
		{
			name:  "Control character becomes space",
			input: "a\x00b\x07c",
			opts:  DefaultSpecialCharOptions(),
			want:  "a b c",
		},
		{
			name:  "Newline tab and CR survive control replacement",
			input: "a\nb\tc\rd",
			opts:  DefaultSpecialCharOptions(),
			want:  "a\nb\tc\rd",
		},
		{
			name:  "Printable-only drops zero-width space",
			input: "a​b",
			opts:  SpecialCharOptions{KeepPrintableOnly: true},
			want:  "ab",
		},
		{
			name:  "All toggles off",
			input: "‘a’\x00",
			opts:  SpecialCharOptions{},
			want:  "‘a’\x00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleSpecialCharacters(tt.input, tt.opts)
			if got != tt.want {
				t.Errorf("HandleSpecialCharacters(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
