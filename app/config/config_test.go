package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Article Title", cfg.Columns.Title)
	assert.Equal(t, "wp_category", cfg.Columns.Category)
	assert.Equal(t, "Loan Guides", cfg.Defaults.Category)
	assert.Equal(t, "draft", cfg.Defaults.Status)
	assert.Equal(t, 160, cfg.Defaults.ExcerptLength)
	assert.Equal(t, "/blog/", cfg.Links.BasePath)
	assert.Equal(t, 2, cfg.Relevance.Weight)
	assert.Contains(t, cfg.Relevance.Keywords, "loan")
	assert.Equal(t, Internal{Candidates: 5, Linked: 3, AnchorWords: 3, MinWordLength: 5}, cfg.Internal)
	assert.Equal(t, ExternalLink{
		Name: "Tala",
		URL:  "https://play.google.com/store/apps/details?id=com.inventureaccess.tala",
	}, cfg.Links.External[0])
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	err := os.WriteFile(path, []byte(`
defaults:
  category: Guides
relevance:
  keywords: [bank]
links:
  external:
    - name: Acme
      url: https://acme.example
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Guides", cfg.Defaults.Category)
	assert.Equal(t, "draft", cfg.Defaults.Status, "untouched fields keep defaults")
	assert.Equal(t, []string{"bank"}, cfg.Relevance.Keywords)
	assert.Equal(t, []ExternalLink{{Name: "Acme", URL: "https://acme.example"}}, cfg.Links.External)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestParse_Invalid(t *testing.T) {
	tbl := []struct {
		name string
		doc  string
		err  string
	}{
		{name: "empty title column", doc: "columns: {title: ''}", err: "title column is not set"},
		{name: "zero excerpt", doc: "defaults: {excerpt_length: 0}", err: "excerpt length must be positive"},
		{name: "linked over candidates", doc: "internal: {linked: 6}", err: "exceed candidates"},
		{name: "bad link", doc: "links: {external: [{name: ' ', url: x}]}", err: "external link #0"},
		{name: "broken yaml", doc: "columns: [", err: "unmarshal config"},
		{name: "negative linked", doc: "internal: {linked: -1}", err: "internal linked must not be negative"},
		{name: "negative candidates", doc: "internal: {candidates: -1, linked: -2}", err: "internal candidates must not be negative"},
		{name: "negative anchor words", doc: "internal: {anchor_words: -1}", err: "internal anchor words must not be negative"},
		{name: "zero min word length", doc: "internal: {min_word_length: 0}", err: "min word length must be positive"},
		{name: "negative weight", doc: "relevance: {weight: -2}", err: "relevance weight must not be negative"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}
