package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// anchor is one link on a simple-index page.
type anchor struct {
	Href string
	Text string
}

// parseAnchors extracts every <a> element from an HTML document, the same way
// an installer reads a simple-index page.
func parseAnchors(r io.Reader) ([]anchor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	var anchors []anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var href string
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = attr.Val
				}
			}
			anchors = append(anchors, anchor{Href: href, Text: strings.TrimSpace(textContent(n))})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return anchors, nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// artifactRef is an artifact entry decoded from a package page anchor of the
// form /simple/{package}/{id}/{name}.
type artifactRef struct {
	ID   int64
	Name string
}

func parseArtifactRef(href string) (artifactRef, bool) {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if len(parts) < 2 {
		return artifactRef{}, false
	}

	id, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil {
		return artifactRef{}, false
	}
	name, err := url.PathUnescape(parts[len(parts)-1])
	if err != nil {
		return artifactRef{}, false
	}
	return artifactRef{ID: id, Name: name}, true
}
