package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	"git.home.luguber.info/inful/tagbuilder/internal/content"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/logfields"
	"git.home.luguber.info/inful/tagbuilder/internal/manifest"
	"git.home.luguber.info/inful/tagbuilder/internal/metrics"
	"git.home.luguber.info/inful/tagbuilder/internal/tagpages"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Manifest output file ('-' for stdout)" default:"tags-manifest.json"`
	Format      string `help:"Manifest format" enum:"json,yaml" default:"json"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	_, err = RunBuild(cfg, *b, g)
	return err
}

// RunBuild loads the site, builds the tag pages and writes the manifest.
func RunBuild(cfg *config.Config, opts BuildCmd, g *Global) (*tagpages.Result, error) {
	start := time.Now()
	slog.Info("Starting tag build", logfields.Path(cfg.Source))

	posts, err := content.LoadPosts(cfg.PostsDir(), content.PostOptions{Permalink: cfg.PostPermalink()})
	if err != nil {
		return nil, err
	}
	pages, err := content.LoadPages(cfg.Source)
	if err != nil {
		return nil, err
	}
	slog.Debug("Site loaded", slog.Int("posts", len(posts)), slog.Int("pages", len(pages)))

	var reg *prom.Registry
	builder := tagpages.NewBuilder(cfg)
	if opts.MetricsFile != "" {
		reg = prom.NewRegistry()
		builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	res, err := builder.Build(tagpages.Site{Posts: posts, Pages: pages})
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn("Build degraded", logfields.Error(w))
	}

	cfgHash, err := cfg.Hash()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to hash configuration").Build()
	}
	m := manifest.New(cfgHash, posts, res, start)
	if err := writeManifest(m, opts, g); err != nil {
		return nil, err
	}

	if reg != nil {
		if err := metrics.WriteTextfile(reg, opts.MetricsFile); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write metrics").
				WithContext("path", opts.MetricsFile).
				Build()
		}
	}
	return res, nil
}

func writeManifest(m *manifest.BuildManifest, opts BuildCmd, g *Global) error {
	var data []byte
	var err error
	if opts.Format == "yaml" {
		data, err = m.ToYAML()
	} else {
		data, err = m.ToJSON()
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode manifest").Build()
	}

	if opts.Output == "-" {
		_, err = g.out().Write(append(data, '\n'))
		return err
	}
	// #nosec G306 -- manifest is not secret
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write manifest").
			WithContext("path", opts.Output).
			Build()
	}
	slog.Info("Manifest written", logfields.Path(opts.Output), slog.String("status", m.Status))
	return nil
}
