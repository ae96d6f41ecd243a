// Package config contains the vocabulary and rules used to turn an article
// export into blog posts.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/defaults.yaml
var defaults []byte

// Config describes columns, defaults and linking vocabulary.
type Config struct {
	Columns   Columns   `yaml:"columns"`
	Defaults  Defaults  `yaml:"defaults"`
	Links     Links     `yaml:"links"`
	Relevance Relevance `yaml:"relevance"`
	Internal  Internal  `yaml:"internal"`
}

// Columns maps article fields to export header names.
type Columns struct {
	Title           string `yaml:"title"`
	Content         string `yaml:"content"`
	MetaTitle       string `yaml:"meta_title"`
	MetaDescription string `yaml:"meta_description"`
	Category        string `yaml:"category"`
	Status          string `yaml:"status"`
}

// Defaults contains fallback values for absent fields.
type Defaults struct {
	Category      string `yaml:"category"`
	Status        string `yaml:"status"`
	ExcerptLength int    `yaml:"excerpt_length"`
}

// Links contains anchor rendering settings and the external link table.
type Links struct {
	Class    string         `yaml:"class"`
	BasePath string         `yaml:"base_path"`
	External []ExternalLink `yaml:"external"`
}

// ExternalLink binds an entity name to its destination.
type ExternalLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Relevance is the keyword vocabulary used to score related posts.
type Relevance struct {
	Weight   int      `yaml:"weight"`
	Keywords []string `yaml:"keywords"`
}

// Internal limits the related-post linking pass.
type Internal struct {
	Candidates    int `yaml:"candidates"`
	Linked        int `yaml:"linked"`
	AnchorWords   int `yaml:"anchor_words"`
	MinWordLength int `yaml:"min_word_length"`
}

// Load returns the embedded defaults overridden by the file at path.
// Empty path means defaults only.
func Load(path string) (Config, error) {
	cfg, err := Parse(nil)
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		return cfg, nil
	}

	bts, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	return Parse(bts)
}

// Parse applies the given YAML document over the embedded defaults.
func Parse(bts []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaults, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal defaults: %w", err)
	}

	if len(bts) > 0 {
		if err := yaml.Unmarshal(bts, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config can drive a generation run.
func (c Config) Validate() error {
	var errs []error

	if c.Columns.Title == "" {
		errs = append(errs, errors.New("title column is not set"))
	}
	if c.Columns.Content == "" {
		errs = append(errs, errors.New("content column is not set"))
	}
	if c.Defaults.ExcerptLength <= 0 {
		errs = append(errs, fmt.Errorf("excerpt length must be positive, got %d", c.Defaults.ExcerptLength))
	}
	if c.Relevance.Weight < 0 {
		errs = append(errs, fmt.Errorf("relevance weight must not be negative, got %d", c.Relevance.Weight))
	}
	for _, lim := range []struct {
		name string
		val  int
	}{
		{"candidates", c.Internal.Candidates},
		{"linked", c.Internal.Linked},
		{"anchor words", c.Internal.AnchorWords},
	} {
		if lim.val < 0 {
			errs = append(errs, fmt.Errorf("internal %s must not be negative, got %d", lim.name, lim.val))
		}
	}
	if c.Internal.MinWordLength < 1 {
		errs = append(errs, fmt.Errorf("min word length must be positive, got %d", c.Internal.MinWordLength))
	}
	if c.Internal.Linked > c.Internal.Candidates {
		errs = append(errs, fmt.Errorf("linked related posts (%d) exceed candidates (%d)",
			c.Internal.Linked, c.Internal.Candidates))
	}
	for i, l := range c.Links.External {
		if strings.TrimSpace(l.Name) == "" || l.URL == "" {
			errs = append(errs, fmt.Errorf("external link #%d has empty name or url", i))
		}
	}

	return errors.Join(errs...)
}
