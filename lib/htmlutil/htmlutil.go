package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

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

// nbsp and friends count as spaces, anything else non-printable is dropped
func printableOrSpace(c rune) rune {
	if unicode.IsSpace(c) {
		return ' '
	}
	if !unicode.IsPrint(c) {
		return -1
	}
	return c
}

// GetText but trimmed down to something comparable: non-printables
// dropped, whitespace runs collapsed to single spaces.
func CleanText(node *html.Node) string {
	text := strings.Map(printableOrSpace, GetText(node))
	return strings.Join(strings.Fields(text), " ")
}
