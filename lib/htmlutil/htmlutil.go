package htmlutil

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// ItalicText returns the text of the first italicized inline element in
// the selection, or "" when there is none. Wikipedia marks single/EP
// titles in italics, distinct from surrounding annotations.
func ItalicText(sel *goquery.Selection) string {
	inline := sel.Find("i, em").First()
	if inline.Length() == 0 {
		return ""
	}
	return GetText(inline.Nodes[0])
}
