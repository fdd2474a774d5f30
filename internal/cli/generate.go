package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/pipeline"
	"github.com/slidegen/slidegen/pkg/store"
)

// generateFlags holds flags shared between generate and its run function.
type generateFlags struct {
	output   string
	noCache  bool
	redisURL string
	mongoURI string
}

// generateCommand creates the generate command, the main entry point of the
// pipeline.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [content.json]",
		Short: "Lay out a content document as a slide deck",
		Long: `Lay out a content document as a slide deck.

The generate command reads a content document (sections, text blocks, image
and table references), binds every node to a slide template, fits the text
into the template slots, and writes the resulting deck as JSON.

A cover, table of contents and closing slide are synthesized around the
authored sections unless --no-front-matter is given.

Results are cached locally for faster subsequent runs. Pass --redis-url to
share the cache between machines, and --mongo-uri to persist every generated
deck.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts, flags)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.deck.json)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even on a cache hit")

	// Layout flags
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "TOML template catalog (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "theme name from the catalog")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "locale for generated labels (default: en)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width in pixels (default: 960)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height in pixels (default: 540)")
	cmd.Flags().BoolVar(&opts.SkipFrontMatter, "no-front-matter", false, "skip cover, contents and closing slides")

	// Backend flags
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", "", "MongoDB URI to persist generated decks")

	return cmd
}

// runGenerate executes the pipeline and writes the deck.
func (c *CLI) runGenerate(cmd *cobra.Command, input string, opts pipeline.Options, flags generateFlags) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	doc, err := content.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load content %s: %w", input, err)
	}

	runner, err := c.newRunner(cmd, flags.noCache, flags.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if flags.mongoURI != "" {
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: flags.mongoURI})
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer st.Close(context.WithoutCancel(ctx))
		runner.Store = st
	}

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		if result != nil && result.Deck != nil && result.Deck.SlideCount() > 0 {
			// Layout failed partway; keep the completed slides around for
			// inspection.
			partial := outputPath(input, flags.output) + ".partial"
			if werr := deck.ExportJSON(result.Deck, partial); werr == nil {
				printWarning("Layout failed after %d slides", result.Deck.SlideCount())
				printFile(partial)
			}
		}
		if id := errors.NodeID(err); id != "" {
			printDetail("node: %s", id)
		}
		return fmt.Errorf("generate: %w", err)
	}

	out := outputPath(input, flags.output)
	if err := deck.ExportJSON(result.Deck, out); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}

	prog.done(fmt.Sprintf("Generated %d slides", result.Stats.SlideCount))
	printSuccess("Deck %q laid out", result.Deck.Title)
	printFile(out)
	printStats(result.Stats.SlideCount, result.Stats.NodeCount, result.CacheInfo.DeckHit)
	printNextStep("Preview it", fmt.Sprintf("%s preview %s", appName, out))
	return nil
}

// outputPath derives the deck output path from the input path unless an
// explicit output was given.
func outputPath(input, output string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".deck.json"
}
