package scrub

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/scrub/internal/dom"
	"github.com/jmylchreest/scrub/internal/logger"
)

// optimizer collapses wrapper divs and prunes empty divs until the tree
// stops changing or a limit is hit.
type optimizer struct {
	doc    *dom.Document
	root   *html.Node
	cfg    *Config
	limits Limits
	stats  *Stats

	// limitHit records which guard stopped the run early, if any.
	limitHit string
}

// optimize runs the structural optimizer over doc. It reports the guard
// that stopped it before convergence, or "" when the tree converged.
func optimize(doc *dom.Document, cfg *Config, stats *Stats) string {
	o := &optimizer{
		doc:    doc,
		root:   doc.Root(),
		cfg:    cfg,
		limits: cfg.Limits,
		stats:  stats,
	}
	o.run()
	return o.limitHit
}

func (o *optimizer) run() {
	for pass := 1; pass <= o.limits.MaxPasses; pass++ {
		o.limitHit = ""
		bubbled, pruned := 0, 0
		if o.cfg.BubbleUpWrapperDivs {
			bubbled = o.bubble()
		}
		if o.cfg.RemoveEmptyDivs {
			pruned = o.prune()
		}

		logger.Debug("optimizer pass", "pass", pass, "bubbled", bubbled, "pruned", pruned)

		if bubbled == 0 && pruned == 0 {
			return
		}
	}

	// The last pass may have finished the job.
	if !o.pending() {
		o.limitHit = ""
		return
	}
	if o.limitHit == "" {
		o.limitHit = "max_passes"
	}
}

// pending reports whether an enabled rule would still change the tree.
func (o *optimizer) pending() bool {
	for _, n := range o.doc.Find("div").Nodes {
		if o.cfg.BubbleUpWrapperDivs && isWrapper(n) {
			return true
		}
		if o.cfg.RemoveEmptyDivs && isEmptyDiv(n) {
			return true
		}
	}
	return false
}

// bubble sweeps for wrapper divs until a sweep replaces nothing or the
// sweep limit is reached. Returns the number of wrappers replaced.
func (o *optimizer) bubble() int {
	total := 0
	for sweep := 0; sweep < o.limits.MaxBubbleSweeps; sweep++ {
		replaced := o.sweep()
		if replaced == 0 {
			return total
		}
		total += replaced
	}
	o.limitHit = "max_bubble_sweeps"
	return total
}

// sweep visits a document-order snapshot of divs and splices every wrapper
// that is still attached when reached.
func (o *optimizer) sweep() int {
	replaced := 0
	for _, n := range o.doc.Find("div").Nodes {
		if !dom.Attached(n, o.root) || !isWrapper(n) {
			continue
		}
		splice(n)
		o.stats.DivsBubbledUp++
		replaced++
	}
	return replaced
}

// prune deletes empty divs, re-checking the ancestors of each deleted div
// since they may have just become empty. Returns the number deleted.
func (o *optimizer) prune() int {
	removed := 0
	for _, n := range o.doc.Find("div").Nodes {
		if removed >= o.limits.MaxEmptyRemovals {
			o.limitHit = "max_empty_removals"
			return removed
		}
		if !dom.Attached(n, o.root) || !isEmptyDiv(n) {
			continue
		}

		for n != nil && n != o.root && isEmptyDiv(n) {
			parent := n.Parent
			dom.Detach(n)
			o.stats.EmptyDivsRemoved++
			removed++
			if removed >= o.limits.MaxEmptyRemovals {
				break
			}
			n = parent
		}
	}
	return removed
}

func isDiv(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Namespace == "" && (n.DataAtom == atom.Div || n.Data == "div")
}

// isWrapper reports whether n is a div whose children are one or more divs
// plus only whitespace text and comments.
func isWrapper(n *html.Node) bool {
	if !isDiv(n) || n.Parent == nil {
		return false
	}
	divs := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if !isDiv(c) {
				return false
			}
			divs++
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.CommentNode:
		default:
			return false
		}
	}
	return divs > 0
}

// isEmptyDiv reports whether n is a div with no element children and no
// non-whitespace text.
func isEmptyDiv(n *html.Node) bool {
	if !isDiv(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return true
}

// splice replaces wrapper in its parent with its child divs, in order.
// Whitespace and comments inside the wrapper are dropped with it.
func splice(wrapper *html.Node) {
	parent := wrapper.Parent
	for c := wrapper.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			wrapper.RemoveChild(c)
			parent.InsertBefore(c, wrapper)
		}
		c = next
	}
	parent.RemoveChild(wrapper)
}
