package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Semior001/blogen/app/blog"
	"github.com/Semior001/blogen/app/logging"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Show is a command to print a generated post and its related posts.
type Show struct {
	Common

	Slug  string `long:"slug" env:"SLUG" required:"true" description:"slug of the post to show"`
	Limit int    `long:"limit" env:"LIMIT" default:"3" description:"max related posts"`

	out io.Writer
}

var postTmpl = template.Must(template.New("post").Parse(`{{.Post.Title}}
slug:     {{.Post.Slug}}
status:   {{.Post.Status}}
category: {{.Post.Category}}
{{with .Post.FeaturedImage}}image:    {{.}}
{{end}}
{{.Post.Excerpt}}

related:
{{range .Related}}  [{{.Relevance}}] {{.Slug}} ({{.Title}})
{{else}}  none
{{end}}`))

// Execute runs the command.
func (s Show) Execute(args []string) error {
	if len(args) > 0 {
		s.Input = args[0]
	}
	if s.out == nil {
		s.out = os.Stdout
	}

	ctx := logging.ContextWithRunID(context.Background(), uuid.NewString())

	_, svc, err := s.service(slog.Default())
	if err != nil {
		return err
	}

	posts, _, err := build(ctx, svc, s.Input)
	if err != nil {
		return err
	}

	coll := blog.Collection{Articles: posts, Scorer: svc.Scorer()}

	post, err := coll.BySlug(s.Slug)
	if err != nil {
		return fmt.Errorf("find post %q: %w", s.Slug, err)
	}

	related, err := coll.Related(s.Slug, s.Limit)
	if err != nil {
		return fmt.Errorf("find related posts: %w", err)
	}

	err = postTmpl.Execute(s.out, struct {
		Post    blog.Article
		Related []blog.Scored
	}{Post: post, Related: related})
	if err != nil {
		return fmt.Errorf("execute post template: %w", err)
	}

	return nil
}
