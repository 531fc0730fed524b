package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestConvert_InlineHighlight - Language-tagged code spans
// ---------------------------------------------------------------------------

func TestConvert_InlineHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		want    []string
		notWant []string
	}{
		{
			name:    "shebang prefix",
			doc:     "Use `#!python print(1)` here",
			want:    []string{`<code class="highlight">`, "print", `style="`},
			notWant: []string{"#!python", "<pre"},
		},
		{
			name:    "colon prefix",
			doc:     "Set `:::go x := 1` first",
			want:    []string{`<code class="highlight">`},
			notWant: []string{":::go"},
		},
		{
			name:    "unknown language falls back to text",
			doc:     "`#!nosuchlang hello`",
			want:    []string{`<code class="highlight">`, "hello"},
			notWant: []string{"#!nosuchlang"},
		},
		{
			name:    "plain span is escaped",
			doc:     "Compare `a < b`",
			want:    []string{"<code>a &lt; b</code>"},
			notWant: []string{`class="highlight"`},
		},
		{
			name: "prefix without code is plain",
			doc:  "`#!python`",
			want: []string{"<code>#!python</code>"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convert(t, RenderConfig{HighlightStyle: "monokai"}, tt.doc).HTML
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, got)
				}
			}
		})
	}
}

func TestHighlightInline(t *testing.T) {
	t.Parallel()

	out, err := highlightInline("go", "func f() {}", "monokai")
	if err != nil {
		t.Fatalf("highlightInline() error: %v", err)
	}
	if !strings.Contains(out, "func") || !strings.Contains(out, "<span") {
		t.Errorf("highlightInline() = %q, want styled spans", out)
	}
	if strings.Contains(out, "<pre") {
		t.Errorf("highlightInline() wrapped output in <pre>: %q", out)
	}
}
