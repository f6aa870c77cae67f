package extractor

import (
	"regexp"

	"golang.org/x/net/html"
)

// textScanner walks the text nodes of a container with a single shared cursor.
type textScanner struct {
	texts []string
	pos   int
}

func newTextScanner(texts []string) *textScanner {
	return &textScanner{texts: texts}
}

// find advances past the first text matching pattern and returns it.
func (s *textScanner) find(pattern *regexp.Regexp) (string, bool) {
	for s.pos < len(s.texts) {
		text := s.texts[s.pos]
		s.pos++
		if pattern.MatchString(text) {
			return text, true
		}
	}
	return "", false
}

func (s *textScanner) next() (string, bool) {
	if s.pos >= len(s.texts) {
		return "", false
	}
	text := s.texts[s.pos]
	s.pos++
	return text, true
}

func (s *textScanner) position() int {
	return s.pos
}

func (s *textScanner) seek(pos int) {
	s.pos = pos
}

// descendantTexts returns every text node under root in document order.
func descendantTexts(root *html.Node) []string {
	var texts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				texts = append(texts, c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	if root != nil {
		walk(root)
	}
	return texts
}
