package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestTOCDepth - Normalization and gap skipping
// ---------------------------------------------------------------------------

func TestTOCDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		levels []int
		want   []int
	}{
		{"flat", []int{2, 2, 2}, []int{1, 1, 1}},
		{"nested", []int{1, 2, 3, 2, 1}, []int{1, 2, 3, 2, 1}},
		{"first heading sets base", []int{2, 3, 2}, []int{1, 2, 1}},
		{"gap is skipped", []int{1, 3, 4}, []int{1, 2, 3}},
		{"shallower than first clamps to 1", []int{3, 1, 2}, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &tocDepth{}
			for i, level := range tt.levels {
				if got := d.next(level); got != tt.want[i] {
					t.Errorf("next(%d) at %d = %d, want %d", level, i, got, tt.want[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGenerateTOC - Nested list markup
// ---------------------------------------------------------------------------

func TestGenerateTOC(t *testing.T) {
	t.Parallel()

	cfg := TOCConfig{TOCClass: "toc"}

	tests := []struct {
		name     string
		headings []headingInfo
		cfg      TOCConfig
		want     string
	}{
		{
			name: "nested headings",
			headings: []headingInfo{
				{Level: 1, ID: "a", Text: "A"},
				{Level: 2, ID: "b", Text: "B"},
				{Level: 1, ID: "c", Text: "C"},
			},
			cfg: cfg,
			want: "<div class=\"toc\">\n<ul>\n" +
				"<li><a href=\"#a\">A</a><ul>\n" +
				"<li><a href=\"#b\">B</a></li>\n" +
				"</ul>\n</li>\n" +
				"<li><a href=\"#c\">C</a></li>\n" +
				"</ul>\n</div>\n",
		},
		{
			name:     "no headings",
			headings: nil,
			cfg:      cfg,
			want:     "<div class=\"toc\">\n<ul></ul>\n</div>\n",
		},
		{
			name:     "title and custom classes",
			headings: []headingInfo{{Level: 2, ID: "x", Text: "X"}},
			cfg:      TOCConfig{Title: "Contents", TitleClass: "t", TOCClass: "nav"},
			want: "<div class=\"nav\">\n<span class=\"t\">Contents</span><ul>\n" +
				"<li><a href=\"#x\">X</a></li>\n</ul>\n</div>\n",
		},
		{
			name:     "text is escaped",
			headings: []headingInfo{{Level: 1, ID: "q", Text: "A & <B>"}},
			cfg:      cfg,
			want: "<div class=\"toc\">\n<ul>\n" +
				"<li><a href=\"#q\">A &amp; &lt;B&gt;</a></li>\n</ul>\n</div>\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := generateTOC(tt.headings, tt.cfg); got != tt.want {
				t.Errorf("generateTOC() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_TOC - Marker replacement and heading links
// ---------------------------------------------------------------------------

func TestConvert_TOC(t *testing.T) {
	t.Parallel()

	doc := "[TOC]\n\n# One\n\n## Two *em*\n\n# Three"

	tests := []struct {
		name    string
		cfg     TOCConfig
		want    []string
		notWant []string
	}{
		{
			name: "marker replaced with nested list",
			cfg:  TOCConfig{Marker: "[TOC]", Title: "Contents", TitleClass: "toctitle", TOCClass: "toc"},
			want: []string{
				`<div class="toc">`,
				`<span class="toctitle">Contents</span>`,
				`<li><a href="#one">One</a><ul>`,
				`<li><a href="#two-em">Two em</a></li>`,
				`<h1 id="one">One</h1>`,
			},
			notWant: []string{"[TOC]"},
		},
		{
			name:    "empty marker disables replacement",
			cfg:     TOCConfig{},
			want:    []string{"<p>[TOC]</p>"},
			notWant: []string{`<div class=`},
		},
		{
			name:    "custom marker",
			cfg:     TOCConfig{Marker: "{{toc}}"},
			want:    []string{"<p>[TOC]</p>"},
			notWant: []string{`<div class=`},
		},
		{
			name: "anchor links wrap heading content",
			cfg:  TOCConfig{AnchorLink: true, AnchorLinkClass: "anchor"},
			want: []string{`<h1 id="one"><a href="#one" class="anchor">One</a></h1>`},
		},
		{
			name: "permalink appended with default text",
			cfg:  TOCConfig{Permalink: true, PermalinkClass: "headerlink"},
			want: []string{`<h1 id="one">One<a href="#one" title="Permanent link" class="headerlink">¶</a></h1>`},
		},
		{
			name: "empty classes are written as given",
			cfg:  TOCConfig{Marker: "[TOC]", Title: "Contents", AnchorLink: true, Permalink: true},
			want: []string{
				`<div class="">`,
				`<span class="">Contents</span>`,
				`<a href="#one" class="">One</a>`,
				`title="Permanent link" class="">¶</a>`,
			},
			notWant: []string{`class="toc"`, `class="toctitle"`, `class="toclink"`, `class="headerlink"`},
		},
		{
			name: "permalink with custom text",
			cfg:  TOCConfig{Permalink: true, PermalinkText: "#", PermalinkClass: "pl"},
			want: []string{`<a href="#three" title="Permanent link" class="pl">#</a>`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convert(t, RenderConfig{TOC: tt.cfg}, doc).HTML
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

func TestConvert_TOCWithoutHeadings(t *testing.T) {
	t.Parallel()

	got := convert(t, RenderConfig{TOC: TOCConfig{Marker: "[TOC]"}}, "[TOC]\n\nNo headings here.").HTML
	if !strings.Contains(got, "<ul></ul>") {
		t.Errorf("output missing empty list:\n%s", got)
	}
}

func TestConvert_TOCMarkerInsideText(t *testing.T) {
	t.Parallel()

	got := convert(t, RenderConfig{TOC: TOCConfig{Marker: "[TOC]", TOCClass: "toc"}}, "See [TOC] below.\n\n# A").HTML
	if strings.Contains(got, `<div class="toc">`) {
		t.Errorf("marker inside a sentence was replaced:\n%s", got)
	}
}
