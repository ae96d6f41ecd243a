package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Semior001/blogen/app/config"
	"github.com/Semior001/blogen/app/ingest"
)

// Post statuses known to the export.
const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

// Collision describes a title whose slug was already taken.
type Collision struct {
	Title    string
	Slug     string // slug derived from the title
	Resolved string // slug assigned to the post
}

// Normalizer maps export records to posts.
type Normalizer struct {
	cols     config.Columns
	defaults config.Defaults
	now      func() time.Time
}

// NewNormalizer makes a Normalizer. now stamps the publication date.
func NewNormalizer(cols config.Columns, defaults config.Defaults, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{cols: cols, defaults: defaults, now: now}
}

// Normalize maps records to posts in record order, numbering them from 1.
// Slugs are unique in the result, every title whose slug clashed with an
// earlier one is listed in the returned collisions.
func (n *Normalizer) Normalize(recs []ingest.Record) ([]Article, []Collision) {
	date := n.now().Format("2006-01-02")
	seen := make(map[string]struct{}, len(recs))

	var collisions []Collision
	result := make([]Article, 0, len(recs))

	for i, rec := range recs {
		a := n.Article(rec, i+1, date)

		base := a.Slug
		if _, taken := seen[base]; taken {
			a.Slug = uniqueSlug(base, seen)
			collisions = append(collisions, Collision{Title: a.Title, Slug: base, Resolved: a.Slug})
		}
		seen[a.Slug] = struct{}{}

		result = append(result, a)
	}

	return result, collisions
}

// Article maps a single record to a post with the given id and date.
func (n *Normalizer) Article(rec ingest.Record, id int, date string) Article {
	title := rec[n.cols.Title]
	content := rec[n.cols.Content]
	excerpt := Excerpt(content, n.defaults.ExcerptLength)

	slug := Slugify(title)
	if slug == "" {
		slug = fmt.Sprintf("post-%d", id)
	}

	var img *string
	if src := FirstImage(content); src != "" {
		img = &src
	}

	return Article{
		ID:              id,
		Slug:            slug,
		Title:           title,
		Content:         content,
		Excerpt:         excerpt,
		MetaTitle:       or(rec[n.cols.MetaTitle], title),
		MetaDescription: or(rec[n.cols.MetaDescription], excerpt),
		Category:        or(rec[n.cols.Category], n.defaults.Category),
		FeaturedImage:   img,
		Status:          or(rec[n.cols.Status], n.defaults.Status),
		PublishedAt:     date,
	}
}

// uniqueSlug appends the smallest numeric suffix, starting from 2, that
// makes base unused, shortening base to keep the slug within MaxSlugLength.
func uniqueSlug(base string, seen map[string]struct{}) string {
	for k := 2; ; k++ {
		suffix := fmt.Sprintf("-%d", k)

		b := base
		if len(b)+len(suffix) > MaxSlugLength {
			b = strings.TrimRight(b[:MaxSlugLength-len(suffix)], "-")
		}

		if _, taken := seen[b+suffix]; !taken {
			return b + suffix
		}
	}
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
