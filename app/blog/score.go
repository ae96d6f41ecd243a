package blog

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Scorer measures topical overlap between post titles: every keyword found
// in both titles adds Weight. The score is symmetric.
type Scorer struct {
	Keywords []string
	Weight   int
}

// NewScorer makes a Scorer with lowercased, deduplicated keywords.
func NewScorer(keywords []string, weight int) Scorer {
	kws := lo.Map(keywords, func(kw string, _ int) string { return strings.ToLower(strings.TrimSpace(kw)) })
	kws = lo.Uniq(lo.Filter(kws, func(kw string, _ int) bool { return kw != "" }))
	return Scorer{Keywords: kws, Weight: weight}
}

// Score returns the relevance of two titles.
func (s Scorer) Score(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)

	score := 0
	for _, kw := range s.Keywords {
		if strings.Contains(a, kw) && strings.Contains(b, kw) {
			score += s.Weight
		}
	}

	return score
}

// Scored is a post with its relevance to another post.
type Scored struct {
	Article
	Relevance int
}

// Related returns up to limit posts from posts related to posts[idx], most
// relevant first. Posts with equal relevance keep their collection order,
// posts with zero relevance are omitted.
func (s Scorer) Related(posts []Article, idx, limit int) []Scored {
	if idx < 0 || idx >= len(posts) || limit <= 0 {
		return nil
	}

	current := posts[idx].Title

	var result []Scored
	for i, p := range posts {
		if i == idx {
			continue
		}
		if rel := s.Score(current, p.Title); rel > 0 {
			result = append(result, Scored{Article: p, Relevance: rel})
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Relevance > result[j].Relevance })

	if len(result) > limit {
		result = result[:limit]
	}

	return result
}
