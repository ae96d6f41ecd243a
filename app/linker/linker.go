// Package linker inserts links into post bodies: external links to the
// brands and regulators a post mentions, and internal links to related posts.
package linker

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Semior001/blogen/app/blog"
	"github.com/Semior001/blogen/app/config"
	"github.com/Semior001/blogen/app/logging"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Linker annotates post bodies with links.
type Linker struct {
	log      *slog.Logger
	scorer   blog.Scorer
	links    config.Links
	internal config.Internal
	entities []entity
	patterns cache.Cache[string, *regexp.Regexp]
}

type entity struct {
	name string
	url  string
	re   *regexp.Regexp
}

// Stats counts links inserted by Annotate.
type Stats struct {
	External int
	Internal int
}

// New makes a Linker. External link entities are matched longest name first,
// names that differ only in case are matched once.
func New(lg *slog.Logger, scorer blog.Scorer, links config.Links, internal config.Internal) *Linker {
	ext := lo.UniqBy(links.External, func(l config.ExternalLink) string {
		return strings.ToLower(strings.TrimSpace(l.Name))
	})

	entities := lo.Map(ext, func(l config.ExternalLink, _ int) entity {
		name := strings.TrimSpace(l.Name)
		return entity{name: name, url: l.URL, re: wordPattern(name)}
	})

	sort.SliceStable(entities, func(i, j int) bool {
		return utf8.RuneCountInString(entities[i].name) > utf8.RuneCountInString(entities[j].name)
	})

	return &Linker{
		log:      lg,
		scorer:   scorer,
		links:    links,
		internal: internal,
		entities: entities,
		patterns: cache.NewCache[string, *regexp.Regexp]().WithLRU().WithMaxKeys(1000),
	}
}

// PatternStats returns stats of the anchor word pattern cache.
func (l *Linker) PatternStats() cache.Stats { return l.patterns.Stat() }

// Annotate adds external and then internal links to every post in place.
func (l *Linker) Annotate(ctx context.Context, posts []blog.Article) Stats {
	var total Stats

	for i := range posts {
		content, ext := l.External(posts[i].Content)
		content, internal := l.Internal(content, posts, i)
		posts[i].Content = content

		total.External += ext
		total.Internal += internal

		l.log.DebugCtx(logging.ContextWithPost(ctx, posts[i].Slug), "annotated post",
			slog.Int("external", ext),
			slog.Int("internal", internal),
		)
	}

	return total
}

// External links the first unlinked occurrence of every known entity.
// An entity that already has an anchor with its name as text is skipped,
// so running it again over its own output changes nothing.
func (l *Linker) External(content string) (string, int) {
	b := parseBody(content)
	attrs := ` target="_blank" rel="noopener noreferrer"` + l.classAttr()

	added := 0
	for _, e := range l.entities {
		if b.hasText(e.name) {
			continue
		}
		if b.link(e.re, e.url, attrs) {
			added++
		}
	}

	if added == 0 {
		return content, 0
	}
	return b.String(), added
}

// Internal links posts[idx] body to its most related posts. Every related
// post gets at most one link, anchored on the first of its title words
// found in the body. Posts already linked from the body are skipped.
func (l *Linker) Internal(content string, posts []blog.Article, idx int) (string, int) {
	related := l.scorer.Related(posts, idx, l.internal.Candidates)
	if len(related) > l.internal.Linked {
		related = related[:l.internal.Linked]
	}

	b := parseBody(content)
	attrs := l.classAttr()

	added := 0
	for _, rel := range related {
		href := l.PostURL(rel.Slug)
		if b.hasHref(href) {
			continue
		}

		for _, word := range l.anchorWords(rel.Title) {
			if b.link(l.pattern(word), href, attrs) {
				added++
				break
			}
		}
	}

	if added == 0 {
		return content, 0
	}
	return b.String(), added
}

// PostURL returns the site path of the post with the given slug.
func (l *Linker) PostURL(slug string) string {
	return strings.TrimRight(l.links.BasePath, "/") + "/" + slug
}

// anchorWords returns candidate anchor words of a title in title order.
func (l *Linker) anchorWords(title string) []string {
	words := lo.Map(strings.Split(title, " "), func(w string, _ int) string {
		return strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	})

	words = lo.Filter(words, func(w string, _ int) bool {
		return utf8.RuneCountInString(w) >= l.internal.MinWordLength
	})

	if len(words) > l.internal.AnchorWords {
		words = words[:l.internal.AnchorWords]
	}

	return words
}

func (l *Linker) pattern(word string) *regexp.Regexp {
	key := strings.ToLower(word)
	if re, ok := l.patterns.Get(key); ok {
		return re
	}

	re := wordPattern(word)
	l.patterns.Set(key, re, 0)
	return re
}

func (l *Linker) classAttr() string {
	if l.links.Class == "" {
		return ""
	}
	return ` class="` + l.links.Class + `"`
}

// wordPattern matches s as a whole word, case-insensitively.
func wordPattern(s string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s) + `\b`)
}
