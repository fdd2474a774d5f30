package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/template"
)

// templatesCommand creates the templates command group.
func (c *CLI) templatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and validate template catalogs",
	}

	cmd.AddCommand(c.templatesListCommand())
	cmd.AddCommand(c.templatesValidateCommand())

	return cmd
}

// templatesListCommand creates the "templates list" subcommand.
func (c *CLI) templatesListCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the templates and themes of a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(catalogPath)
			if err != nil {
				return err
			}

			catalog := store.Catalog()
			fmt.Println(StyleTitle.Render("Templates"))
			for _, name := range catalog.Names() {
				spec, _ := catalog.Get(name)
				printKeyValue(name, describeSpec(spec))
			}

			fmt.Println()
			fmt.Println(StyleTitle.Render("Themes"))
			for _, name := range store.ThemeNames() {
				theme, err := store.Theme(name)
				if err != nil {
					continue
				}
				printKeyValue(name, describeTheme(theme))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "TOML template catalog (default: built-in catalog)")

	return cmd
}

// templatesValidateCommand creates the "templates validate" subcommand.
func (c *CLI) templatesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog.toml]",
		Short: "Validate a TOML template catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(args[0])
			if err != nil {
				printError("Catalog is invalid")
				printDetail("%s", errors.UserMessage(err))
				return err
			}
			printSuccess("Catalog is valid")
			printDetail("%d templates, %d themes", store.Catalog().Len(), len(store.ThemeNames()))
			return nil
		},
	}
}

// loadStore loads a catalog file, falling back to the built-in catalog when
// no path is given.
func loadStore(path string) (*template.Store, error) {
	if path == "" {
		return template.Default(), nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return template.Load(path)
}

// describeSpec summarizes a template for the list output.
func describeSpec(spec *template.Spec) string {
	var parts []string
	if spec.Role != "" {
		parts = append(parts, "role="+spec.Role)
	}
	kinds := make([]string, len(spec.Kinds))
	for i, k := range spec.Kinds {
		kinds[i] = string(k)
	}
	parts = append(parts, "kinds="+strings.Join(kinds, ","))
	parts = append(parts, fmt.Sprintf("%d slots", len(spec.Slots)))
	return strings.Join(parts, "  ")
}

// describeTheme summarizes a theme for the list output.
func describeTheme(theme template.Theme) string {
	parts := []string{theme.Background, theme.Accent}
	if theme.FontFamily != "" {
		parts = append(parts, theme.FontFamily)
	}
	return strings.Join(parts, "  ")
}
