package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/acdenisSK/release-maker/config"
)

const loggerKey = "logger"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "release-maker",
		Usage:   "Collect commit histories and write changelogs for GitHub releases",
		Version: "0.4.0",
		Commands: []*cli.Command{
			CommitsCmd(),
			GenerateCmd(),
			RenderCmd(),
			CacheCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log every resolution attempt",
			},
		},
		Before: setupLogging,
	}
}

// Flags shared by the commands that read a repository's history.
func repositoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch of the origin remote to list commits from (default from config: master)",
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Hash of the newest commit to include",
		},
		&cli.StringFlag{
			Name:    "end",
			Aliases: []string{"e"},
			Usage:   "Hash of the oldest commit to include",
		},
		&cli.BoolFlag{
			Name:  "lenient",
			Usage: "Ignore boundaries that are not in the history instead of failing",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Git engine (go-git, git, none)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

func setupLogging(c *cli.Context) error {
	logger := logrus.New()
	logger.SetOutput(errWriter(c))
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[loggerKey] = logger
	return nil
}

// logger returns the application logger installed by setupLogging.
func logger(c *cli.Context) logrus.FieldLogger {
	if l, ok := c.App.Metadata[loggerKey].(*logrus.Logger); ok {
		return l
	}
	return logrus.StandardLogger()
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if branch := c.String("branch"); branch != "" {
		cfg.Branch = branch
	}
	if engine := c.String("engine"); engine != "" {
		cfg.Engine = engine
	}
	if c.Bool("lenient") {
		cfg.StrictRange = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
