// Package cli implements the slidegen command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/slidegen/slidegen/pkg/buildinfo"
	"github.com/slidegen/slidegen/pkg/cache"
	"github.com/slidegen/slidegen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "slidegen"

	// defaultListLimit bounds how many stored decks "decks list" shows.
	defaultListLimit = 20
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "slidegen",
		Short:        "Slidegen lays out structured content as presentation decks",
		Long:         `Slidegen turns an abstract content description (sections, text, images, tables) into a fully positioned, format-agnostic slide deck. Slides are bound to templates, text is fitted and split across continuations, and the result is written as deck JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.decksCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. When redisURL is set the
// runner uses a shared Redis cache instead of the local file cache.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool, redisURL string) (*pipeline.Runner, error) {
	var (
		ch  cache.Cache
		err error
	)
	if redisURL != "" {
		ch, err = cache.NewRedisCache(cmd.Context(), redisURL)
		if err != nil {
			return nil, err
		}
	} else {
		ch, err = newCache(noCache)
		if err != nil {
			return nil, err
		}
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/slidegen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
