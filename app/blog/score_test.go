package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeywords = []string{"hustler fund", "m-shwari", "tala", "branch", "fuliza", "kcb", "crb",
	"interest", "loan", "limit", "student", "approval"}

func TestScorer_Score(t *testing.T) {
	s := NewScorer(testKeywords, 2)

	tbl := []struct {
		a, b string
		want int
	}{
		{a: "Which loan app is cheapest?", b: "Which bank loan is cheapest?", want: 2},
		{a: "Tala loan limit", b: "TALA LOAN LIMIT increase", want: 6},
		{a: "Hustler Fund interest", b: "hustler fund vs m-shwari", want: 2},
		{a: "Fuliza", b: "M-Shwari", want: 0},
		{a: "", b: "loan", want: 0},
	}

	for _, tt := range tbl {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.a, tt.b))
			assert.Equal(t, s.Score(tt.a, tt.b), s.Score(tt.b, tt.a), "symmetric")
		})
	}
}

func TestNewScorer(t *testing.T) {
	s := NewScorer([]string{" Loan", "loan", "", "CRB"}, 3)
	assert.Equal(t, Scorer{Keywords: []string{"loan", "crb"}, Weight: 3}, s)
}

func TestCollection(t *testing.T) {
	c := Collection{
		Articles: []Article{
			{ID: 1, Slug: "which-loan-app-is-cheapest", Title: "Which loan app is cheapest?"},
			{ID: 2, Slug: "fuliza-explained", Title: "Fuliza explained"},
			{ID: 3, Slug: "which-bank-loan-is-cheapest", Title: "Which bank loan is cheapest?"},
			{ID: 4, Slug: "tala-loan-limit", Title: "Tala loan limit"},
			{ID: 5, Slug: "loan-limit-tricks", Title: "Loan limit tricks"},
		},
		Scorer: NewScorer(testKeywords, 2),
	}

	assert.Len(t, c.All(), 5)
	assert.Equal(t, []string{"which-loan-app-is-cheapest", "fuliza-explained",
		"which-bank-loan-is-cheapest", "tala-loan-limit", "loan-limit-tricks"}, c.Slugs())

	a, err := c.BySlug("fuliza-explained")
	require.NoError(t, err)
	assert.Equal(t, 2, a.ID)

	_, err = c.BySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("cheapest pair relate to each other", func(t *testing.T) {
		rel, err := c.Related("which-loan-app-is-cheapest", 5)
		require.NoError(t, err)
		require.NotEmpty(t, rel)
		assert.Equal(t, "which-bank-loan-is-cheapest", rel[0].Slug)
		assert.GreaterOrEqual(t, rel[0].Relevance, 2)

		rel, err = c.Related("which-bank-loan-is-cheapest", 5)
		require.NoError(t, err)
		assert.Equal(t, "which-loan-app-is-cheapest", rel[0].Slug)
		assert.GreaterOrEqual(t, rel[0].Relevance, 2)
	})

	t.Run("ordered by relevance then collection order", func(t *testing.T) {
		rel, err := c.Related("tala-loan-limit", 3)
		require.NoError(t, err)
		require.Len(t, rel, 3)
		assert.Equal(t, "loan-limit-tricks", rel[0].Slug)
		assert.Equal(t, 4, rel[0].Relevance)
		assert.Equal(t, "which-loan-app-is-cheapest", rel[1].Slug)
		assert.Equal(t, "which-bank-loan-is-cheapest", rel[2].Slug)
	})

	t.Run("limit and unrelated", func(t *testing.T) {
		rel, err := c.Related("tala-loan-limit", 1)
		require.NoError(t, err)
		assert.Len(t, rel, 1)

		rel, err = c.Related("fuliza-explained", 3)
		require.NoError(t, err)
		assert.Empty(t, rel)

		rel, err = c.Related("tala-loan-limit", 0)
		require.NoError(t, err)
		assert.Empty(t, rel)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := c.Related("missing", 3)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
