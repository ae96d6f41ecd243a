package blog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tbl := []struct {
		title string
		want  string
	}{
		{title: "How much is Tala loan?", want: "how-much-is-tala-loan"},
		{title: "  M-Shwari vs. KCB M-Pesa: which is better?  ", want: "m-shwari-vs-kcb-m-pesa-which-is-better"},
		{title: "Loan -- limits  \t and\nfees", want: "loan-limits-and-fees"},
		{title: "Café crème 100%", want: "caf-crme-100"},
		{title: "-leading and trailing-", want: "leading-and-trailing"},
		{title: "???", want: ""},
		{
			title: "Which loan app gives the highest limit for first time borrowers in Kenya without a CRB check today?",
			want:  "which-loan-app-gives-the-highest-limit-for-first-time-borrowers-in-kenya-without",
		},
		{title: strings.Repeat("a", 79) + " b", want: strings.Repeat("a", 79)},
	}

	for _, tt := range tbl {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxSlugLength)
			if got != "" {
				assert.Regexp(t, slugRe, got)
			}
		})
	}

	assert.Len(t, Slugify(strings.Repeat("word ", 40)), MaxSlugLength-1, "cut right after a hyphen")
	assert.Len(t, Slugify("Which loan app gives the highest limit for first time borrowers in Kenya without a CRB check today?"), MaxSlugLength)
}

func TestExcerpt(t *testing.T) {
	long := "<p>" + strings.Repeat("lorem ipsum ", 20) + "</p>"

	tbl := []struct {
		name string
		html string
		want string
	}{
		{name: "short", html: "<p>Tala charges a fee.</p>", want: "Tala charges a fee."},
		{name: "tags become spaces", html: "<h2>Fees</h2><p>Low\n\n and <b>fair</b></p>", want: "Fees Low and fair"},
		{name: "nbsp", html: "a&nbsp;b c", want: "a&nbsp;b c"},
		{name: "raw nbsp", html: "a\u00a0 b", want: "a b"},
		{name: "stray angle brackets", html: "a > b, c < d", want: "a b, c d"},
		{name: "cut at word boundary", html: long, want: strings.TrimSpace(strings.Repeat("lorem ipsum ", 13)) + "..."},
		{name: "no whitespace", html: strings.Repeat("x", 200), want: strings.Repeat("x", 160) + "..."},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.html, 160)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 163)
			assert.NotContains(t, got, "<")
			assert.NotContains(t, got, ">")
		})
	}
}

func TestExcerpt_Unicode(t *testing.T) {
	got := Excerpt(strings.Repeat("ñ", 170), 160)
	assert.Equal(t, strings.Repeat("ñ", 160)+"...", got)
}

func TestFirstImage(t *testing.T) {
	tbl := []struct {
		name string
		html string
		want string
	}{
		{name: "image", html: `<p>hi</p><img src="https://cdn.example/a.png" alt="a"><img src="b.png">`, want: "https://cdn.example/a.png"},
		{name: "none", html: `<p>no pictures</p>`, want: ""},
		{name: "empty src skipped", html: `<img src=""><img src="b.png">`, want: "b.png"},
		{name: "any src counts", html: `<iframe src="https://video.example/x"></iframe><img src="c.png">`, want: "https://video.example/x"},
		{name: "lazy data-src ignored", html: `<img data-src="lazy.png"><img src="d.png">`, want: "d.png"},
		{name: "entities decoded", html: `<img src="a.png?w=1&amp;h=2">`, want: "a.png?w=1&h=2"},
		{name: "single quotes", html: `<img src='e.png'>`, want: "e.png"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstImage(tt.html))
		})
	}
}
