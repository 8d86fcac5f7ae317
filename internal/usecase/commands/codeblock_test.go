package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rustbot/internal/domain"
)

func TestExtractCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantLang string
	}{
		{
			name:     "fenced with language",
			input:    "```rust\nfn main() {}\n```",
			wantCode: "fn main() {}",
			wantLang: "rust",
		},
		{
			name:     "fenced without language",
			input:    "```\nlet x = 1;\n```",
			wantCode: "let x = 1;",
			wantLang: "",
		},
		{
			name:     "inline",
			input:    "`1 + 1`",
			wantCode: "1 + 1",
			wantLang: "",
		},
		{
			name:     "surrounding prose is ignored",
			input:    "please run ```rust\nprintln!(\"hi\")\n``` thanks",
			wantCode: "println!(\"hi\")",
			wantLang: "rust",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, lang, err := ExtractCodeBlock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantLang, lang)
		})
	}
}

func TestExtractCodeBlockMissing(t *testing.T) {
	_, _, err := ExtractCodeBlock("no code here")
	assert.ErrorIs(t, err, domain.ErrMissingCodeBlock)
}
