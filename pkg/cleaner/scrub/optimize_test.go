package scrub

import (
	"testing"

	"github.com/jmylchreest/scrub/internal/dom"
)

func parseDoc(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestIsWrapper(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"single child div", `<div><div>x</div></div>`, true},
		{"several child divs", `<div><div>a</div><div>b</div></div>`, true},
		{"whitespace between divs", "<div>\n <div>a</div>\n <div>b</div>\n</div>", true},
		{"comment between divs", `<div><div>a</div><!-- c --><div>b</div></div>`, true},
		{"no children", `<div></div>`, false},
		{"only whitespace", `<div>   </div>`, false},
		{"text beside div", `<div>t<div>a</div></div>`, false},
		{"non-div child", `<div><div>a</div><span>b</span></div>`, false},
		{"not a div", `<section><div>a</div></section>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			n := doc.Root().FirstChild
			if got := isWrapper(n); got != tt.want {
				t.Errorf("isWrapper(%s) = %v, want %v", tt.html, got, tt.want)
			}
		})
	}
}

func TestIsEmptyDiv(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"no children", `<div></div>`, true},
		{"whitespace only", "<div> \n\t</div>", true},
		{"comment only", `<div><!-- c --></div>`, true},
		{"text", `<div>x</div>`, false},
		{"element child", `<div><br></div>`, false},
		{"empty span is not a div", `<span></span>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			n := doc.Root().FirstChild
			if got := isEmptyDiv(n); got != tt.want {
				t.Errorf("isEmptyDiv(%s) = %v, want %v", tt.html, got, tt.want)
			}
		})
	}
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		bubble      bool
		prune       bool
		want        string
		wantBubbled int
		wantPruned  int
	}{
		{
			name:        "splice keeps child order",
			html:        `<p>a</p><div><div>1</div><div>2</div></div><p>b</p>`,
			bubble:      true,
			want:        `<p>a</p><div>1</div><div>2</div><p>b</p>`,
			wantBubbled: 1,
		},
		{
			name:        "splice does not merge grandchildren",
			html:        `<div><div><p>a</p><div>b</div></div></div>`,
			bubble:      true,
			want:        `<div><p>a</p><div>b</div></div>`,
			wantBubbled: 1,
		},
		{
			name:        "bubbling exposes empty divs to pruning",
			html:        `<div><div></div><div>x</div></div>`,
			bubble:      true,
			prune:       true,
			want:        `<div>x</div>`,
			wantBubbled: 1,
			wantPruned:  1,
		},
		{
			name:        "wrapper with an empty child",
			html:        `<div><div></div><div><p>x</p></div></div>`,
			bubble:      true,
			prune:       true,
			want:        `<div><p>x</p></div>`,
			wantBubbled: 1,
			wantPruned:  1,
		},
		{
			name:       "pruning cascades up the ancestor chain",
			html:       `<div><div><div><div></div></div></div></div><p>x</p>`,
			prune:      true,
			want:       `<p>x</p>`,
			wantPruned: 4,
		},
		{
			name: "everything off",
			html: `<div><div></div></div>`,
			want: `<div><div></div></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			cfg := &Config{
				OptimizeHTML:        true,
				BubbleUpWrapperDivs: tt.bubble,
				RemoveEmptyDivs:     tt.prune,
				Limits:              DefaultLimits(),
			}
			stats := NewStats()

			if limit := optimize(doc, cfg, stats); limit != "" {
				t.Errorf("optimize() stopped by %s", limit)
			}

			got, err := doc.Render()
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("optimize() = %q, want %q", got, tt.want)
			}
			if stats.DivsBubbledUp != tt.wantBubbled {
				t.Errorf("DivsBubbledUp = %d, want %d", stats.DivsBubbledUp, tt.wantBubbled)
			}
			if stats.EmptyDivsRemoved != tt.wantPruned {
				t.Errorf("EmptyDivsRemoved = %d, want %d", stats.EmptyDivsRemoved, tt.wantPruned)
			}
		})
	}
}
