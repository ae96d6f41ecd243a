package blog

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// MaxSlugLength is the maximum length of a slug.
const MaxSlugLength = 80

const ellipsis = "..."

var (
	hyphensRe = regexp.MustCompile(`-+`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe identifier from the title: lowercase latin
// letters, digits and single hyphens, at most MaxSlugLength long.
func Slugify(title string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, strings.ToLower(title))

	s = strings.Join(strings.Fields(s), "-")
	s = hyphensRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}

	return s
}

// Excerpt returns the plain text of html, cut to at most limit characters at
// a word boundary and marked with an ellipsis when cut.
func Excerpt(html string, limit int) string {
	text := tagRe.ReplaceAllString(html, " ")
	text = strings.NewReplacer("\u00a0", " ", "<", "", ">", "").Replace(text)
	text = strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}

	return cut + ellipsis
}

// FirstImage returns the first non-empty src attribute in html, or empty
// string if there is none. Any element with src counts, not only images.
// The value is entity-decoded, and attributes like data-src do not match.
func FirstImage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var src string
	doc.Find("[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src = strings.TrimSpace(s.AttrOr("src", ""))
		return src == ""
	})

	return src
}
