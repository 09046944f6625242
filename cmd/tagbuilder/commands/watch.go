package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	"git.home.luguber.info/inful/tagbuilder/internal/logfields"
	"git.home.luguber.info/inful/tagbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildCmd `embed:""`
	Debounce time.Duration `help:"Quiet period before a rebuild" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunWatch(ctx, root.Config, *w, g)
}

// RunWatch builds once, then rebuilds on every settled change until ctx ends.
// The configuration is reloaded for each rebuild.
func RunWatch(ctx context.Context, configPath string, opts WatchCmd, g *Global) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if _, err := RunBuild(cfg, opts.BuildCmd, g); err != nil {
		return err
	}

	rebuild := func(context.Context) error {
		slog.Info("Rebuilding tag pages")
		next, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("reload config: %w", err)
		}
		_, err = RunBuild(next, opts.BuildCmd, g)
		return err
	}

	w, err := watch.New(watch.ExtFilter([]string{".md", ".markdown", ".html"}, configPath), opts.Debounce, rebuild)
	if err != nil {
		return err
	}
	if err := w.AddFile(configPath); err != nil {
		return err
	}
	if err := w.AddTree(cfg.PostsDir(), hidden); err != nil {
		return err
	}
	if err := w.AddTree(cfg.Source, func(name string) bool {
		return hidden(name) || strings.HasPrefix(name, "_")
	}); err != nil {
		return err
	}

	slog.Info("Watching for changes", logfields.Path(cfg.Source))
	return w.Run(ctx)
}

func hidden(name string) bool { return strings.HasPrefix(name, ".") }
