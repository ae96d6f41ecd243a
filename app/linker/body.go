package linker

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// segment is a raw slice of the markup. Only text outside anchors and
// raw-text elements is linkable.
type segment struct {
	raw      string
	linkable bool
}

type anchor struct {
	href string
	text string
}

// body is markup split into segments, so links are inserted into text only
// and never nested into existing anchors.
type body struct {
	segs    []segment
	anchors []anchor
}

func parseBody(s string) *body {
	b := &body{}
	z := html.NewTokenizer(strings.NewReader(s))

	depth := 0    // anchors currently open
	rawText := "" // name of the open script/style element
	consumed := 0 // bytes of s covered by segments
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// a tag cut off by the end of input is not returned as a token
			if consumed < len(s) {
				b.segs = append(b.segs, segment{raw: s[consumed:]})
			}
			break
		}

		seg := segment{raw: string(z.Raw())}
		consumed += len(seg.raw)

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "a":
				depth++
				b.anchors = append(b.anchors, anchor{href: hrefAttr(z, hasAttr)})
			case "script", "style", "textarea", "title":
				rawText = string(name)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "a":
				if depth > 0 {
					depth--
				}
			case rawText:
				rawText = ""
			}
		case html.TextToken:
			seg.linkable = depth == 0 && rawText == ""
			if depth > 0 && len(b.anchors) > 0 {
				b.anchors[len(b.anchors)-1].text += string(z.Text())
			}
		}

		b.segs = append(b.segs, seg)
	}

	return b
}

func hrefAttr(z *html.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "href" {
			return string(val)
		}
	}
	return ""
}

// link wraps the first match of re in linkable text into an anchor to href.
// attrs is appended to the opening tag as is. Reports whether a link was
// inserted.
func (b *body) link(re *regexp.Regexp, href, attrs string) bool {
	for i, seg := range b.segs {
		if !seg.linkable {
			continue
		}

		loc := re.FindStringIndex(seg.raw)
		if loc == nil {
			continue
		}

		match := seg.raw[loc[0]:loc[1]]

		var repl []segment
		if loc[0] > 0 {
			repl = append(repl, segment{raw: seg.raw[:loc[0]], linkable: true})
		}
		repl = append(repl,
			segment{raw: `<a href="` + html.EscapeString(href) + `"` + attrs + ">"},
			segment{raw: match},
			segment{raw: "</a>"},
		)
		if loc[1] < len(seg.raw) {
			repl = append(repl, segment{raw: seg.raw[loc[1]:], linkable: true})
		}

		tail := append(repl, b.segs[i+1:]...)
		b.segs = append(b.segs[:i], tail...)
		b.anchors = append(b.anchors, anchor{href: href, text: match})

		return true
	}

	return false
}

// hasHref reports whether any anchor points to the same page as href.
// Host, query, fragment and trailing slashes are ignored.
func (b *body) hasHref(href string) bool {
	want := hrefPath(href)
	for _, a := range b.anchors {
		if hrefPath(a.href) == want {
			return true
		}
	}
	return false
}

func hrefPath(href string) string {
	href = strings.TrimSpace(href)
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	return strings.TrimRight(href, "/")
}

// hasText reports whether any anchor's text equals s, case-insensitively.
func (b *body) hasText(s string) bool {
	for _, a := range b.anchors {
		if strings.EqualFold(strings.TrimSpace(a.text), s) {
			return true
		}
	}
	return false
}

func (b *body) String() string {
	sb := &strings.Builder{}
	for _, seg := range b.segs {
		_, _ = sb.WriteString(seg.raw)
	}
	return sb.String()
}
