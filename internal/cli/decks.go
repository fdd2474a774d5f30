package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/store"
)

// decksCommand creates the decks command group for browsing persisted decks.
func (c *CLI) decksCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Browse decks persisted in MongoDB",
	}

	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI (e.g. mongodb://localhost:27017)")

	cmd.AddCommand(c.decksListCommand(&mongoURI))
	cmd.AddCommand(c.decksShowCommand(&mongoURI))
	cmd.AddCommand(c.decksDeleteCommand(&mongoURI))

	return cmd
}

// decksListCommand creates the "decks list" subcommand.
func (c *CLI) decksListCommand(mongoURI *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored decks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, *mongoURI, func(ctx context.Context, st store.Store) error {
				summaries, err := st.List(ctx, limit)
				if err != nil {
					return err
				}
				if len(summaries) == 0 {
					printInfo("No decks stored")
					return nil
				}
				for _, s := range summaries {
					printKeyValue(s.ID, fmt.Sprintf("%s  %d slides  %s",
						s.Title, s.SlideCount, s.CreatedAt.Format("2006-01-02 15:04")))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "maximum number of decks to list")

	return cmd
}

// decksShowCommand creates the "decks show" subcommand.
func (c *CLI) decksShowCommand(mongoURI *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [deck-id]",
		Short: "Fetch a stored deck and write it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, *mongoURI, func(ctx context.Context, st store.Store) error {
				d, err := st.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if output == "" {
					return deck.WriteJSON(d, cmd.OutOrStdout())
				}
				if err := deck.ExportJSON(d, output); err != nil {
					return err
				}
				printSuccess("Deck %q fetched", d.Title)
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// decksDeleteCommand creates the "decks delete" subcommand.
func (c *CLI) decksDeleteCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [deck-id]",
		Short: "Delete a stored deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, *mongoURI, func(ctx context.Context, st store.Store) error {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted deck %s", args[0])
				return nil
			})
		},
	}
}

// withStore connects to MongoDB, runs fn, and closes the connection.
func (c *CLI) withStore(cmd *cobra.Command, mongoURI string, fn func(context.Context, store.Store) error) error {
	if mongoURI == "" {
		return fmt.Errorf("--mongo-uri is required")
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	loggerFromContext(ctx).Debug("connecting to deck store")
	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer st.Close(context.WithoutCancel(ctx))

	return fn(ctx, st)
}
