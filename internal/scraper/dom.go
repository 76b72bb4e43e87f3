package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
)

// domNode is the minimal rendered-DOM surface the extraction pipeline needs.
// The browser is behind this seam so the selector logic stays testable and a
// missing match is an ordinary absence, never an error.
type domNode interface {
	// find returns the first descendant matching the selector, if any.
	find(selector string) (domNode, bool)
	// findAll returns every descendant matching the selector.
	findAll(selector string) []domNode
	// text returns the node's trimmed visible text, or "" when unavailable.
	text() string
	// attr returns the named attribute, or "" when absent.
	attr(name string) string
}

// navigator drives the shared render surface to a listing's own page during
// detail enrichment.
type navigator interface {
	open(url string) (domNode, error)
}

// elemNode adapts a rod element to domNode.
type elemNode struct {
	el *rod.Element
}

func (n elemNode) find(selector string) (domNode, bool) {
	els, err := n.el.Elements(selector)
	if err != nil || len(els) == 0 {
		return nil, false
	}
	return elemNode{el: els.First()}, true
}

func (n elemNode) findAll(selector string) []domNode {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil
	}
	nodes := make([]domNode, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, elemNode{el: el})
	}
	return nodes
}

func (n elemNode) text() string {
	text, err := n.el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func (n elemNode) attr(name string) string {
	value, err := n.el.Attribute(name)
	if err != nil || value == nil {
		return ""
	}
	return *value
}

// pageNode adapts a whole rendered page to domNode. Text and attributes are
// read from the document body.
type pageNode struct {
	page *rod.Page
}

func (n pageNode) find(selector string) (domNode, bool) {
	els, err := n.page.Elements(selector)
	if err != nil || len(els) == 0 {
		return nil, false
	}
	return elemNode{el: els.First()}, true
}

func (n pageNode) findAll(selector string) []domNode {
	els, err := n.page.Elements(selector)
	if err != nil {
		return nil
	}
	nodes := make([]domNode, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, elemNode{el: el})
	}
	return nodes
}

func (n pageNode) text() string {
	body, ok := n.find("body")
	if !ok {
		return ""
	}
	return body.text()
}

func (n pageNode) attr(name string) string {
	body, ok := n.find("body")
	if !ok {
		return ""
	}
	return body.attr(name)
}

// rodNavigator reuses one page for every detail navigation so a request never
// holds more than a single render surface.
type rodNavigator struct {
	page    *rod.Page
	timeout time.Duration
	settle  time.Duration
}

func (n *rodNavigator) open(target string) (domNode, error) {
	bounded := n.page.Timeout(n.timeout)
	if err := bounded.Navigate(target); err != nil {
		return nil, fmt.Errorf("navigation to %s failed: %w", target, err)
	}
	if err := bounded.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load for %s failed: %w", target, err)
	}

	// Settle wait for client-side rendering to finish
	time.Sleep(n.settle)

	return pageNode{page: n.page}, nil
}

// resolveHref turns an anchor href into an absolute URL against the site
// base, or "" when it cannot.
func resolveHref(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return baseURL + href
	default:
		return ""
	}
}
