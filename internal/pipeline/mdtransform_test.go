package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2json/internal/frontmatter"
)

// ---------------------------------------------------------------------------
// TestNormalizeLineEndings - CRLF and CR become LF
// ---------------------------------------------------------------------------

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unix unchanged", "a\nb", "a\nb"},
		{"windows", "a\r\nb\r\n", "a\nb\n"},
		{"old mac", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\n", "a\nb\nc\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeLineEndings(tt.input); got != tt.want {
				t.Errorf("normalizeLineEndings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	got := SplitLines("---\r\ntitle: A\r\n---\r\nBody")
	want := []string{"---", "title: A", "---", "Body"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitLines() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestFrontmatterPreprocessor - Block removal and metadata capture
// ---------------------------------------------------------------------------

func TestFrontmatterPreprocessor(t *testing.T) {
	t.Parallel()

	t.Run("block is removed and parsed", func(t *testing.T) {
		t.Parallel()

		s := NewSession()
		got, err := FrontmatterPreprocessor{}.Run([]string{"---", "title: A", "---", "# H"}, s)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if diff := cmp.Diff([]string{"# H"}, got); diff != "" {
			t.Errorf("lines mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(map[string]any{"title": "A"}, s.Metadata.Interface()); diff != "" {
			t.Errorf("metadata mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no block leaves lines and empty metadata", func(t *testing.T) {
		t.Parallel()

		s := NewSession()
		lines := []string{"# H", "text"}
		got, err := FrontmatterPreprocessor{}.Run(lines, s)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if diff := cmp.Diff(lines, got); diff != "" {
			t.Errorf("lines mismatch (-want +got):\n%s", diff)
		}
		if s.Metadata.Len() != 0 {
			t.Errorf("metadata Len() = %d, want 0", s.Metadata.Len())
		}
	})

	t.Run("malformed YAML fails", func(t *testing.T) {
		t.Parallel()

		_, err := FrontmatterPreprocessor{}.Run([]string{"---", "tags: [a", "---"}, NewSession())
		if !errors.Is(err, frontmatter.ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunPreprocessors - Order and error propagation
// ---------------------------------------------------------------------------

type appendPreprocessor struct{ line string }

func (p appendPreprocessor) Run(lines []string, _ *Session) ([]string, error) {
	return append(lines, p.line), nil
}

type failingPreprocessor struct{ err error }

func (p failingPreprocessor) Run([]string, *Session) ([]string, error) {
	return nil, p.err
}

func TestRunPreprocessors(t *testing.T) {
	t.Parallel()

	got, err := runPreprocessors(
		[]Preprocessor{appendPreprocessor{"a"}, appendPreprocessor{"b"}},
		[]string{"start"},
		NewSession(),
	)
	if err != nil {
		t.Fatalf("runPreprocessors() error: %v", err)
	}
	if diff := cmp.Diff([]string{"start", "a", "b"}, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	boom := errors.New("boom")
	_, err = runPreprocessors(
		[]Preprocessor{failingPreprocessor{boom}, appendPreprocessor{"never"}},
		[]string{"start"},
		NewSession(),
	)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestDefaultPreprocessors_FrontmatterFirst(t *testing.T) {
	t.Parallel()

	pps := DefaultPreprocessors()
	if len(pps) == 0 {
		t.Fatal("DefaultPreprocessors() is empty")
	}
	if _, ok := pps[0].(FrontmatterPreprocessor); !ok {
		t.Errorf("first preprocessor = %T, want FrontmatterPreprocessor", pps[0])
	}
}
