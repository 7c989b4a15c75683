package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/unseenbook/internal/config"
	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/i18n"
)

var (
	bookLang    string
	chapterHTML bool
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "List the parts and chapters of the book",
	RunE: func(cmd *cobra.Command, args []string) error {
		book, _, err := loadBook(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		fmt.Fprintln(out, book.Title)
		for _, p := range book.Parts {
			fmt.Fprintln(out)
			bold.Fprintf(out, "Part %d: %s\n", p.ID, p.Title)
			for _, ch := range p.Chapters {
				fmt.Fprintf(out, "  %3d  %s", ch.ID, ch.Title)
				if !ch.HasContent() {
					faint.Fprint(out, "  (coming soon)")
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <id>",
	Short: "Print a chapter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := content.ParseID(args[0])
		if err != nil {
			return err
		}
		book, cfg, err := loadBook(cmd.Context())
		if err != nil {
			return err
		}
		ch, ok := book.ChapterByID(id)
		if !ok {
			return fmt.Errorf("chapter %d not found", id)
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "%d. %s\n", ch.ID, ch.Title)
		fmt.Fprintf(out, "Part %d", ch.PartID)
		if ch.ReadTime != "" {
			fmt.Fprintf(out, " · %s", ch.ReadTime)
		}
		fmt.Fprintln(out)
		if len(ch.Sections) > 0 {
			fmt.Fprintf(out, "Sections: %s\n", strings.Join(ch.Sections, ", "))
		}
		fmt.Fprintln(out)

		if !ch.HasContent() {
			color.New(color.FgYellow).Fprintln(out, "This chapter is coming soon.")
			return nil
		}
		if chapterHTML {
			fmt.Fprintln(out, newMarkdown(cfg).Render(ch.Content, cfg.DefaultPreferences().Theme))
			return nil
		}
		fmt.Fprintln(out, ch.Content)
		return nil
	},
}

// loadBook loads the book in the --lang language, or the configured
// default language.
func loadBook(ctx context.Context) (*content.Book, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	lang := cfg.DefaultPreferences().Language
	if bookLang != "" {
		if lang, err = i18n.ParseLanguage(bookLang); err != nil {
			return nil, nil, err
		}
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := newCatalog(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	book, err := catalog.Book(ctx, lang)
	if err != nil {
		return nil, nil, err
	}
	return book, cfg, nil
}

func init() {
	for _, c := range []*cobra.Command{partsCmd, chapterCmd} {
		c.Flags().StringVarP(&bookLang, "lang", "l", "", "language (en or ar)")
		rootCmd.AddCommand(c)
	}
	chapterCmd.Flags().BoolVar(&chapterHTML, "html", false, "print the chapter rendered as HTML")
}
