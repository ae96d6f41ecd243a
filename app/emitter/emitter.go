// Package emitter writes generated posts as a data module consumed by the site.
package emitter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Semior001/blogen/app/blog"
)

//go:embed data/blogposts.ts.tmpl
var tsModule string

var tsModuleTmpl = template.Must(template.New("tsModule").Parse(tsModule))

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTS   Format = "ts"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses the format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTS, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Emitter renders posts into a self-contained module.
type Emitter struct {
	Format       Format
	Scorer       blog.Scorer // replicated in the TS module for related posts lookup
	RelatedLimit int         // default limit of the related posts lookup
}

// Render writes the module to w.
func (e Emitter) Render(w io.Writer, posts []blog.Article) error {
	if posts == nil {
		posts = []blog.Article{}
	}

	postsJSON, err := marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal posts: %w", err)
	}

	switch e.Format {
	case FormatJSON:
		if _, err = w.Write(append(postsJSON, '\n')); err != nil {
			return fmt.Errorf("write posts: %w", err)
		}
		return nil
	case FormatTS:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, e.Format)
	}

	kws := e.Scorer.Keywords
	if kws == nil {
		kws = []string{}
	}

	kwsJSON, err := json.Marshal(kws)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	err = tsModuleTmpl.Execute(w, struct {
		Posts    string
		Keywords string
		Weight   int
		Limit    int
	}{
		Posts:    string(postsJSON),
		Keywords: string(kwsJSON),
		Weight:   e.Scorer.Weight,
		Limit:    e.RelatedLimit,
	})
	if err != nil {
		return fmt.Errorf("execute module template: %w", err)
	}

	return nil
}

// WriteFile renders the module into path, creating missing directories.
// The previous file is replaced only after the new one is fully written.
func (e Emitter) WriteFile(path string, posts []blog.Article) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("make output dir %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	buf := &bytes.Buffer{}
	if err = e.Render(buf, posts); err != nil {
		return err
	}

	if _, err = f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// marshal encodes posts as indented JSON without escaping markup, since
// the content is rendered as trusted markup.
func marshal(posts []blog.Article) ([]byte, error) {
	buf := &bytes.Buffer{}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(posts); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
