package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patternhq/patlas/pkg/config"
	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/pipeline"
)

// newListCmd creates the list command: print article IDs matching filters.
func newListCmd() *cobra.Command {
	var (
		category string
		language string
		ignore   []string
	)

	cmd := &cobra.Command{
		Use:   "list <source-root>",
		Short: "List article IDs, optionally filtered by category or language",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			src := args[0]
			cfg, err := config.Load(src)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(loggerFromContext(c.Context()))
			result, err := runner.Validate(c.Context(), pipeline.Options{
				SourceRoot: src,
				Extensions: cfg.Extensions,
				Ignore:     append(append([]string(nil), cfg.Ignore...), ignore...),
				Logger:     loggerFromContext(c.Context()),
			})
			if err != nil {
				return err
			}

			ids := filterIDs(result, category, language)
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintln(os.Stdout, id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only articles in this category")
	cmd.Flags().StringVar(&language, "language", "", "only articles with a code block in this language")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "ignore glob, repeatable (doublestar syntax)")

	return cmd
}

// filterIDs applies the category and language filters to the catalog.
func filterIDs(result *pipeline.Result, category, language string) []string {
	var ids []string
	wantCat := docs.Category(strings.ToLower(strings.TrimSpace(category)))
	wantLang := docs.Language(strings.ToLower(strings.TrimSpace(language)))

	for _, a := range result.Catalog.Articles() {
		if category != "" && a.Category != wantCat {
			continue
		}
		if language != "" && !hasLanguage(a, wantLang) {
			continue
		}
		ids = append(ids, a.ID)
	}
	return ids
}

func hasLanguage(a *docs.Article, lang docs.Language) bool {
	for _, l := range a.Languages() {
		if l == lang {
			return true
		}
	}
	return false
}
