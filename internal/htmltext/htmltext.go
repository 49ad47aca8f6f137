// Package htmltext strips markup from untrusted submission text.
// Participants type into a plain input box, but pasted content arrives
// with tags often enough that the pipeline defends itself.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip returns the text content of s with any HTML tags removed. Input
// without markup passes through unchanged apart from entity decoding.
func Strip(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
