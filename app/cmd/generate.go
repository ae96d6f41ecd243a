// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Semior001/blogen/app/blog"
	"github.com/Semior001/blogen/app/config"
	"github.com/Semior001/blogen/app/emitter"
	"github.com/Semior001/blogen/app/generator"
	"github.com/Semior001/blogen/app/logging"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Common contains options shared by all commands.
type Common struct {
	Input         string `long:"input" env:"INPUT" default:"./data/articles.csv" description:"path to the article export, overridden by the first argument"`
	Config        string `long:"config" env:"CONFIG" description:"path to the yaml config overriding embedded defaults"`
	PublishedOnly bool   `long:"published-only" env:"PUBLISHED_ONLY" description:"leave out posts with a status other than publish"`
}

// Generate is a command to generate the blog data module.
type Generate struct {
	Common

	Output string `long:"output" env:"OUTPUT" default:"./data/blogPosts.ts" description:"path to the generated module, overridden by the second argument"`
	Format string `long:"format" env:"FORMAT" default:"ts" choice:"ts" choice:"json" description:"format of the generated module"`
}

// Execute runs the command.
func (g Generate) Execute(args []string) error {
	if len(args) > 0 {
		g.Input = args[0]
	}
	if len(args) > 1 {
		g.Output = args[1]
	}

	format, err := emitter.ParseFormat(g.Format)
	if err != nil {
		return fmt.Errorf("parse format: %w", err)
	}

	ctx := logging.ContextWithRunID(context.Background(), uuid.NewString())
	lg := slog.Default()

	cfg, svc, err := g.service(lg)
	if err != nil {
		return err
	}

	posts, rep, err := build(ctx, svc, g.Input)
	if err != nil {
		return err
	}

	em := emitter.Emitter{
		Format:       format,
		Scorer:       svc.Scorer(),
		RelatedLimit: cfg.Internal.Linked,
	}

	if err = em.WriteFile(g.Output, posts); err != nil {
		return fmt.Errorf("write module: %w", err)
	}

	lg.InfoCtx(ctx, "generated posts",
		slog.Int("posts", len(posts)),
		slog.String("output", g.Output),
		slog.Int("rejected", len(rep.Ingest.Rejected)),
		slog.Int("collisions", len(rep.Collisions)),
		slog.Int("skipped", rep.Skipped),
		slog.Int("external_links", rep.Links.External),
		slog.Int("internal_links", rep.Links.Internal),
	)

	for _, p := range posts {
		lg.DebugCtx(ctx, "post", slog.String("slug", p.Slug))
	}

	return nil
}

func (c Common) service(lg *slog.Logger) (config.Config, *generator.Service, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	svc := generator.NewService(
		lg.With(slog.String("prefix", "generator")),
		cfg,
		generator.Opts{PublishedOnly: c.PublishedOnly},
	)

	return cfg, svc, nil
}

func build(ctx context.Context, svc *generator.Service, input string) ([]blog.Article, generator.Report, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, generator.Report{}, fmt.Errorf("open export: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			slog.Default().WarnCtx(ctx, "close export", slog.Any("err", err))
		}
	}()

	posts, rep, err := svc.Build(ctx, f)
	if err != nil {
		return nil, generator.Report{}, fmt.Errorf("build posts: %w", err)
	}

	return posts, rep, nil
}
