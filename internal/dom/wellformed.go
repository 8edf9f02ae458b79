package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// voidElements never take an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// optionalEnd elements may be left open; their end tag is implied.
var optionalEnd = map[string]bool{
	"p": true, "li": true, "dt": true, "dd": true, "option": true,
	"optgroup": true, "tr": true, "td": true, "th": true, "thead": true,
	"tbody": true, "tfoot": true, "colgroup": true, "rt": true, "rp": true,
}

// impliedClose maps a start tag to the open elements it closes when one of
// them is the current element.
var impliedClose = map[string][]string{
	"li":       {"li"},
	"p":        {"p"},
	"dt":       {"dt", "dd"},
	"dd":       {"dt", "dd"},
	"tr":       {"tr", "td", "th"},
	"td":       {"td", "th"},
	"th":       {"td", "th"},
	"option":   {"option"},
	"optgroup": {"optgroup", "option"},
	"rt":       {"rt", "rp"},
	"rp":       {"rt", "rp"},
}

// WellFormed is a lenient structural check. Every non-void element must be
// closed, end tags must match an open element, and only elements with
// optional end tags may be closed implicitly. Unterminated tags at the end
// of the input make it malformed.
func WellFormed(text string) bool {
	z := html.NewTokenizer(strings.NewReader(text))
	var stack []string

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return false
			}
			if raw := z.Raw(); len(raw) > 0 && raw[0] == '<' {
				return false
			}
			for _, open := range stack {
				if !optionalEnd[open] {
					return false
				}
			}
			return true

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			stack = closeImplied(stack, tag)
			stack = append(stack, tag)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			var ok bool
			if stack, ok = closeTo(stack, tag); !ok {
				return false
			}
		}
	}
}

func closeImplied(stack []string, tag string) []string {
	closes := impliedClose[tag]
	for len(stack) > 0 && contains(closes, stack[len(stack)-1]) {
		stack = stack[:len(stack)-1]
	}
	return stack
}

// closeTo pops up to and including tag. Elements above tag must all have
// optional end tags.
func closeTo(stack []string, tag string) ([]string, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return stack[:i], true
		}
		if !optionalEnd[stack[i]] {
			return stack, false
		}
	}
	return stack, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
