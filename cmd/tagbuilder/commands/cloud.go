package commands

import (
	"fmt"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	"git.home.luguber.info/inful/tagbuilder/internal/content"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// CloudCmd implements the 'cloud' command.
type CloudCmd struct{}

func (c *CloudCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	posts, err := content.LoadPosts(cfg.PostsDir(), content.PostOptions{Permalink: cfg.PostPermalink()})
	if err != nil {
		return err
	}

	tags := taxonomy.Aggregate(posts, cfg.Ignored())
	for _, e := range taxonomy.Cloud(tags, cfg.TagCloudBuckets) {
		if _, err := fmt.Fprintf(g.out(), "%s set-%d\n", e.Tag, e.Class); err != nil {
			return err
		}
	}
	return nil
}
