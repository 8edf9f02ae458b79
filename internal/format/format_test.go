package format

import (
	"strings"
	"testing"
)

func TestReindent(t *testing.T) {
	formatted := "<div>\n  <p>\n    x\n  </p>\n</div>"

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "two spaces is unchanged",
			opts: Options{IndentSize: 2},
			want: formatted,
		},
		{
			name: "four spaces doubles each level",
			opts: Options{IndentSize: 4},
			want: "<div>\n    <p>\n        x\n    </p>\n</div>",
		},
		{
			name: "one space halves each level",
			opts: Options{IndentSize: 1},
			want: "<div>\n <p>\n  x\n </p>\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reindent(formatted, tt.opts); got != tt.want {
				t.Errorf("reindent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReindent_Verbatim(t *testing.T) {
	tests := []struct {
		name      string
		formatted string
		want      string
	}{
		{
			name:      "pre content kept",
			formatted: "<div>\n  <pre>a\n    b</pre>\n</div>",
			want:      "<div>\n    <pre>a\n    b</pre>\n</div>",
		},
		{
			name:      "textarea content kept",
			formatted: "<div>\n  <TEXTAREA>a\n   b\n  </TEXTAREA>\n  <p>x</p>\n</div>",
			want:      "<div>\n    <TEXTAREA>a\n   b\n  </TEXTAREA>\n    <p>x</p>\n</div>",
		},
		{
			name:      "inline pre closes on its line",
			formatted: "<div>\n  <pre>a</pre>\n  <p>x</p>\n</div>",
			want:      "<div>\n    <pre>a</pre>\n    <p>x</p>\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reindent(tt.formatted, Options{IndentSize: 4}); got != tt.want {
				t.Errorf("reindent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerbatimAfter(t *testing.T) {
	tests := []struct {
		line string
		open string
		want string
	}{
		{"<pre>a", "", "pre"},
		{"<pre>a</pre>", "", ""},
		{"  b</pre>", "pre", ""},
		{"  </textarea> <pre>", "pre", "pre"},
		{"<p>x</p>", "", ""},
		{"<prefix>", "", ""},
		{"<Script>", "", "script"},
	}
	for _, tt := range tests {
		if got := verbatimAfter(tt.line, tt.open); got != tt.want {
			t.Errorf("verbatimAfter(%q, %q) = %q, want %q", tt.line, tt.open, got, tt.want)
		}
	}
}

func TestBeautify_PreKeepsIndentation(t *testing.T) {
	got := Beautify("<div><pre>a\n    b</pre></div>", Options{IndentSize: 4})
	if !strings.Contains(got, "<pre>a\n    b</pre>") {
		t.Errorf("pre content changed: %q", got)
	}
}

func TestReindent_BlankMarkers(t *testing.T) {
	formatted := "<div>\n  <p>a</p>\n  " + blankMarker + "\n  <p>b</p>\n</div>"

	t.Run("marker becomes empty line", func(t *testing.T) {
		got := reindent(formatted, Options{IndentSize: 2})
		want := "<div>\n  <p>a</p>\n\n  <p>b</p>\n</div>"
		if got != want {
			t.Errorf("reindent() = %q, want %q", got, want)
		}
	})

	t.Run("marker keeps indent when indenting empty lines", func(t *testing.T) {
		got := reindent(formatted, Options{IndentSize: 4, IndentEmptyLines: true})
		want := "<div>\n    <p>a</p>\n    \n    <p>b</p>\n</div>"
		if got != want {
			t.Errorf("reindent() = %q, want %q", got, want)
		}
	})

	t.Run("inline marker is dropped", func(t *testing.T) {
		got := reindent("<p>a"+blankMarker+"b</p>", Options{IndentSize: 2})
		if got != "<p>ab</p>" {
			t.Errorf("reindent() = %q, want %q", got, "<p>ab</p>")
		}
	})
}

func TestBeautify(t *testing.T) {
	src := `<div><section><p>Hello</p><p>World</p></section></div>`

	t.Run("splits elements onto lines", func(t *testing.T) {
		got := Beautify(src, Options{})
		if !strings.Contains(got, "\n") {
			t.Fatalf("expected multi-line output, got %q", got)
		}
		for _, s := range []string{"<div>", "<section>", "Hello", "World", "</div>"} {
			if !strings.Contains(got, s) {
				t.Errorf("expected output to contain %q, got %q", s, got)
			}
		}
	})

	t.Run("indent size is honored", func(t *testing.T) {
		got := Beautify(src, Options{IndentSize: 4})
		indented := false
		for _, line := range strings.Split(got, "\n") {
			lead := len(line) - len(strings.TrimLeft(line, " "))
			if lead%4 != 0 {
				t.Errorf("line %q has indent %d, not a multiple of 4", line, lead)
			}
			if lead > 0 {
				indented = true
			}
		}
		if !indented {
			t.Errorf("expected nested lines to be indented, got %q", got)
		}
	})

	t.Run("markers never leak", func(t *testing.T) {
		got := Beautify("<div><p>a</p>\n\n<p>b</p></div>", Options{PreserveNewlines: true})
		if strings.Contains(got, "scrub:blank") {
			t.Errorf("expected marker to be removed, got %q", got)
		}
	})
}
