package cmd

import (
	"fmt"
	"iter"

	"github.com/urfave/cli/v2"
)

// CacheCmd returns the cache command and its subcommands.
func CacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the repositories cloned into the cache",
		Subcommands: []*cli.Command{
			{
				Name:   "path",
				Usage:  "Print the directory holding cached repositories",
				Action: cachePathAction,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List cached repositories",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "match",
						Aliases: []string{"m"},
						Usage:   "Only list repositories whose name matches the glob pattern",
					},
				},
				Action: cacheListAction,
			},
			{
				Name:      "exists",
				Usage:     "Print the path of the repository cached under NAME, failing if there is none",
				ArgsUsage: "NAME",
				Action:    cacheExistsAction,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cached repository",
				Action: cacheClearAction,
			},
		},
	}
}

func cachePathAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	repoCache, err := newCache(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, repoCache.ProgramPath())
	return nil
}

func cacheListAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	repoCache, err := newCache(cfg)
	if err != nil {
		return err
	}

	var repos iter.Seq[string]
	if pattern := c.String("match"); pattern != "" {
		repos, err = repoCache.Match(pattern)
	} else {
		repos, err = repoCache.Repositories()
	}
	if err != nil {
		return err
	}

	for path := range repos {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}

func cacheExistsAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("missing repository name")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	repoCache, err := newCache(cfg)
	if err != nil {
		return err
	}

	if !repoCache.RepositoryExists(name) {
		return fmt.Errorf("repository %q is not cached", name)
	}
	fmt.Fprintln(c.App.Writer, repoCache.RepositoryPath(name))
	return nil
}

func cacheClearAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	repoCache, err := newCache(cfg)
	if err != nil {
		return err
	}

	if err := repoCache.Clear(); err != nil {
		return err
	}
	logger(c).WithField("path", repoCache.ProgramPath()).Info("cleared cache")
	return nil
}
