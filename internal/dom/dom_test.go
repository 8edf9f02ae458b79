package dom

import (
	"strings"
	"testing"
)

func TestParse_FragmentRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"single element", `<div>Content</div>`, `<div>Content</div>`},
		{"siblings at top level", `<p>a</p><p>b</p>`, `<p>a</p><p>b</p>`},
		{"text and elements", `Hello <b>world</b>`, `Hello <b>world</b>`},
		{"uppercase tags are lowered", `<DIV CLASS="x">y</DIV>`, `<div class="x">y</div>`},
		{"attribute order kept", `<a href="/" title="t" id="i">x</a>`, `<a href="/" title="t" id="i">x</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.html)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.IsFull() {
				t.Error("expected fragment parse")
			}
			got, err := doc.Render()
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_FullDocument(t *testing.T) {
	doc, err := Parse("<!DOCTYPE html><html><head><title>T</title></head><body><p>x</p></body></html>")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !doc.IsFull() {
		t.Fatal("expected full document parse")
	}
	got, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, s := range []string{"<!DOCTYPE html>", "<title>T</title>", "<body><p>x</p></body>"} {
		if !strings.Contains(got, s) {
			t.Errorf("expected output to contain %q, got %s", s, got)
		}
	}
}

func TestLooksLikeDocument(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"<!doctype html><p>x</p>", true},
		{"  <HTML><body></body></HTML>", true},
		{"<div>x</div>", false},
		{"text <html>", false},
	}
	for _, tt := range tests {
		if got := LooksLikeDocument(tt.text); got != tt.want {
			t.Errorf("LooksLikeDocument(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestAttachedAndDetach(t *testing.T) {
	doc, err := Parse(`<div><section><p>x</p></section></div>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root := doc.Root()
	section := doc.Find("section").Nodes[0]
	p := doc.Find("p").Nodes[0]

	if !Attached(p, root) {
		t.Fatal("expected p to be attached before detach")
	}

	Detach(section)

	if Attached(section, root) {
		t.Error("expected section to be detached")
	}
	if Attached(p, root) {
		t.Error("expected descendant of detached subtree to be detached")
	}

	// Detaching an orphan is a no-op.
	Detach(section)

	got, _ := doc.Render()
	if got != "<div></div>" {
		t.Errorf("Render() = %q, want %q", got, "<div></div>")
	}
}
