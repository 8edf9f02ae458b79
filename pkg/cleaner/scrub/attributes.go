package scrub

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// eventHandlers is the fixed set of inline handler attributes removed by
// StripEventHandlers. Read-only after init.
var eventHandlers = map[string]struct{}{
	"onclick":     {},
	"ondblclick":  {},
	"onmousedown": {},
	"onmouseup":   {},
	"onmouseover": {},
	"onmousemove": {},
	"onmouseout":  {},
	"onfocus":     {},
	"onblur":      {},
	"onkeypress":  {},
	"onkeydown":   {},
	"onkeyup":     {},
	"onsubmit":    {},
	"onreset":     {},
	"onselect":    {},
	"onchange":    {},
	"onload":      {},
	"onunload":    {},
	"onerror":     {},
	"onresize":    {},
	"onscroll":    {},
}

// IsEventHandler reports whether name is one of the inline event handler
// attributes removed by StripEventHandlers.
func IsEventHandler(name string) bool {
	_, ok := eventHandlers[strings.ToLower(name)]
	return ok
}

// stripAllAttributes applies stripAttributes to every element under doc.
func stripAllAttributes(doc *goquery.Selection, cfg *Config, stats *Stats) {
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		stripAttributes(s.Get(0), cfg, stats)
	})
}

// stripAttributes removes the configured attribute categories from one
// element. The remaining attributes keep their order.
func stripAttributes(n *html.Node, cfg *Config, stats *Stats) {
	stats.ElementsProcessed++

	if cfg.StripClasses {
		stripClasses(n, cfg.PreserveClasses, stats)
	}

	if cfg.StripIDs {
		stats.IDsRemoved += filterAttrs(n, func(key string) bool { return key == "id" })
	}
	if cfg.StripStyles {
		stats.StylesRemoved += filterAttrs(n, func(key string) bool { return key == "style" })
	}
	if cfg.StripDataAttributes {
		stats.DataAttributesRemoved += filterAttrs(n, func(key string) bool {
			return strings.HasPrefix(key, "data-")
		})
	}
	if cfg.StripEventHandlers {
		stats.EventHandlersRemoved += filterAttrs(n, IsEventHandler)
	}
	if cfg.StripARIA {
		stats.ARIAAttributesRemoved += filterAttrs(n, func(key string) bool {
			return strings.HasPrefix(key, "aria-")
		})
	}
}

// stripClasses drops class tokens not matched by preserve. The attribute is
// deleted when no token survives.
func stripClasses(n *html.Node, preserve []ClassPattern, stats *Stats) {
	for i := range n.Attr {
		attr := &n.Attr[i]
		if attr.Namespace != "" || attr.Key != "class" {
			continue
		}

		tokens := strings.Fields(attr.Val)
		var kept []string
		for _, tok := range tokens {
			if matchesAny(preserve, tok) {
				kept = append(kept, tok)
			}
		}

		if len(kept) > 0 {
			stats.ClassesRemoved += len(tokens) - len(kept)
			attr.Val = strings.Join(kept, " ")
			return
		}

		stats.ClassesRemoved += len(tokens)
		filterAttrs(n, func(key string) bool { return key == "class" })
		return
	}
}

// filterAttrs deletes every attribute whose key satisfies drop and returns
// how many were deleted. Namespaced attributes are left alone.
func filterAttrs(n *html.Node, drop func(key string) bool) int {
	kept := n.Attr[:0]
	removed := 0
	for _, attr := range n.Attr {
		if attr.Namespace == "" && drop(attr.Key) {
			removed++
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
	return removed
}
