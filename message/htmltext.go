package message

import (
	"regexp"
	"strings"
)

var (
	styleBlocks  = regexp.MustCompile(`(?is)<style.*?</style>`)
	scriptBlocks = regexp.MustCompile(`(?is)<script.*?</script>`)
	anyTag       = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// htmlEntities unescapes the handful of entities the fallback cares
// about. The replacements happen in a single pass, so the '&' produced by
// an &amp; is never re-interpreted as the start of another entity.
var htmlEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
)

// HTMLToText lossily renders an HTML body as plain text. It is the
// fallback used when a message carries no text/plain alternative, not an
// HTML renderer: style and script blocks are removed, every remaining tag
// becomes a single space, common entities are unescaped, and whitespace
// runs collapse to one space.
func HTMLToText(html string) string {
	html = styleBlocks.ReplaceAllString(html, " ")
	html = scriptBlocks.ReplaceAllString(html, " ")
	html = anyTag.ReplaceAllString(html, " ")
	html = htmlEntities.Replace(html)
	html = spaceRuns.ReplaceAllString(html, " ")
	return strings.TrimSpace(html)
}
