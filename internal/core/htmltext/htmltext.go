// Package htmltext reduces rich text job descriptions to plain text
// Pipeline order
// 1 drop script style and comment sections entirely
// 2 turn block boundaries into spaces so words never fuse
// 3 strip remaining tags
// 4 decode HTML entities
// 5 UTF-8 repair and NFC normalization strip format chars
// 6 collapse whitespace to single spaces and trim
package htmltext

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pre-compiled regular expressions, block boundaries mirror the tags
// rich editors actually emit for job postings
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockTags    = regexp.MustCompile(`(?i)</?(p|div|li|ul|ol|h[1-6]|tr|blockquote)[^>]*>|<br\s*/?>|<hr\s*/?>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Strip converts HTML to plain text suitable for a scoring payload
// plain text input passes through with only whitespace cleanup
func Strip(s string) string {
	if s == "" {
		return ""
	}

	s = scriptTag.ReplaceAllString(s, "")
	s = styleTag.ReplaceAllString(s, "")
	s = htmlComments.ReplaceAllString(s, "")

	// block boundaries become spaces so "...experience</p><p>required..."
	// never collapses into "experiencerequired"
	s = blockTags.ReplaceAllString(s, " ")
	s = allTags.ReplaceAllString(s, "")

	s = html.UnescapeString(s)

	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err == nil {
		s = ns
	}

	return collapseSpaces(s)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
