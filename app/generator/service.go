// Package generator runs the pipeline that turns an article export into
// annotated blog posts.
package generator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Semior001/blogen/app/blog"
	"github.com/Semior001/blogen/app/config"
	"github.com/Semior001/blogen/app/ingest"
	"github.com/Semior001/blogen/app/linker"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Report is what happened during a generation run.
type Report struct {
	Ingest     ingest.Report
	Collisions []blog.Collision
	Skipped    int // posts left out by the status filter
	Links      linker.Stats
}

// Service builds posts from an export.
type Service struct {
	log           *slog.Logger
	normalizer    *blog.Normalizer
	linker        *linker.Linker
	scorer        blog.Scorer
	publishedOnly bool
}

// Opts contains optional parameters of the Service.
type Opts struct {
	Now           func() time.Time
	PublishedOnly bool // drop posts whose status is not "publish"
}

// NewService makes a Service driven by cfg.
func NewService(lg *slog.Logger, cfg config.Config, opts Opts) *Service {
	scorer := blog.NewScorer(cfg.Relevance.Keywords, cfg.Relevance.Weight)

	return &Service{
		log:           lg,
		normalizer:    blog.NewNormalizer(cfg.Columns, cfg.Defaults, opts.Now),
		linker:        linker.New(lg.With(slog.String("prefix", "linker")), scorer, cfg.Links, cfg.Internal),
		scorer:        scorer,
		publishedOnly: opts.PublishedOnly,
	}
}

// Scorer returns the relevance scorer shared by linking and related lookups.
func (s *Service) Scorer() blog.Scorer { return s.scorer }

// Build reads the export and returns annotated posts in export order.
func (s *Service) Build(ctx context.Context, rd io.Reader) ([]blog.Article, Report, error) {
	var rep Report

	recs, ingestRep, err := ingest.Read(rd)
	if err != nil {
		return nil, Report{}, fmt.Errorf("ingest export: %w", err)
	}
	rep.Ingest = ingestRep

	s.log.DebugCtx(ctx, "export parsed",
		slog.Int("records", ingestRep.Records),
		slog.Int("accepted", ingestRep.Accepted))

	for _, r := range ingestRep.Rejected {
		s.log.WarnCtx(ctx, "dropped malformed record",
			slog.Int("line", r.Line),
			slog.Int("fields", r.Fields),
			slog.Int("want", r.Want))
	}

	if ingestRep.Unterminated {
		s.log.WarnCtx(ctx, "export ends with an unterminated record, dropped")
	}

	posts, collisions := s.normalizer.Normalize(recs)
	rep.Collisions = collisions

	for _, c := range collisions {
		s.log.WarnCtx(ctx, "slug collision resolved",
			slog.String("title", c.Title),
			slog.String("slug", c.Slug),
			slog.String("resolved", c.Resolved))
	}

	if s.publishedOnly {
		published := lo.Filter(posts, func(a blog.Article, _ int) bool { return a.Published() })
		rep.Skipped = len(posts) - len(published)
		posts = published
	}

	rep.Links = s.linker.Annotate(ctx, posts)

	stats := s.linker.PatternStats()
	s.log.DebugCtx(ctx, "links added",
		slog.Int("external", rep.Links.External),
		slog.Int("internal", rep.Links.Internal),
		slog.Int("pattern_cache_hits", stats.Hits),
		slog.Int("pattern_cache_misses", stats.Misses))

	return posts, rep, nil
}
