package scrub

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/scrub/internal/dom"
)

// removeTags detaches every element whose tag is in names, subtree
// included. Matches nested inside an already removed element are not
// counted.
func removeTags(doc *dom.Document, names []string, stats *Stats) {
	remove := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			remove[name] = struct{}{}
		}
	}
	if len(remove) == 0 {
		return
	}

	root := doc.Root()
	doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := remove[strings.ToLower(goquery.NodeName(s))]
		return ok
	}).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if !dom.Attached(n, root) {
			return
		}
		dom.Detach(n)
		stats.TagsRemoved++
	})
}

// removeComments detaches every comment node in the tree.
func removeComments(root *html.Node, stats *Stats) {
	var comments []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.CommentNode {
				comments = append(comments, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)

	for _, c := range comments {
		dom.Detach(c)
		stats.CommentsRemoved++
	}
}
