package service

import "github.com/microcosm-cc/bluemonday"

// richTextPolicy keeps the basic formatting tags the site editor emits and
// strips everything else, scripts and event handlers included. Applied to
// every free-text field that reaches the database from a public form.
var richTextPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "u", "p", "br", "ul", "ol", "li")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}()

// sanitizeText strips disallowed HTML from a free-text input.
func sanitizeText(s string) string {
	return richTextPolicy.Sanitize(s)
}
