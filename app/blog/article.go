// Package blog contains the blog post entity, the rules that derive it from
// an export record and the accessors the site renders from.
package blog

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// ErrNotFound is returned when no post has the requested slug.
var ErrNotFound = errors.New("not found")

// Article is a single blog post.
type Article struct {
	ID              int     `json:"id"`
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Excerpt         string  `json:"excerpt"`
	MetaTitle       string  `json:"metaTitle"`
	MetaDescription string  `json:"metaDescription"`
	Category        string  `json:"category"`
	FeaturedImage   *string `json:"featuredImage"`
	Status          string  `json:"status"`
	PublishedAt     string  `json:"publishedAt"`
}

// Published reports whether the post status is "publish", case-insensitively.
func (a Article) Published() bool { return strings.EqualFold(a.Status, StatusPublish) }

// Collection is an ordered set of posts with lookups used by the site.
type Collection struct {
	Articles []Article
	Scorer   Scorer
}

// All returns every post in generation order.
func (c Collection) All() []Article { return c.Articles }

// BySlug returns the first post with the given slug.
func (c Collection) BySlug(slug string) (Article, error) {
	a, ok := lo.Find(c.Articles, func(a Article) bool { return a.Slug == slug })
	if !ok {
		return Article{}, ErrNotFound
	}
	return a, nil
}

// Slugs returns the slugs of all posts, used to enumerate routes.
func (c Collection) Slugs() []string {
	return lo.Map(c.Articles, func(a Article, _ int) string { return a.Slug })
}

// Related returns at most limit posts related to the one with the given
// slug, most relevant first.
func (c Collection) Related(slug string, limit int) ([]Scored, error) {
	_, idx, ok := lo.FindIndexOf(c.Articles, func(a Article) bool { return a.Slug == slug })
	if !ok {
		return nil, ErrNotFound
	}
	return c.Scorer.Related(c.Articles, idx, limit), nil
}
