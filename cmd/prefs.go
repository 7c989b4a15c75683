package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

var prefsReader string

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change a reader's stored preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the reader's language and theme",
	RunE: withPrefs(func(ctx context.Context, store *prefs.SQLStore, out io.Writer, args []string) error {
		p, err := store.Load(ctx, prefsReader)
		if err != nil {
			return err
		}
		printPrefs(out, p)
		return nil
	}),
}

var prefsToggleLanguageCmd = &cobra.Command{
	Use:   "toggle-language",
	Short: "Switch between English and Arabic",
	RunE: withPrefs(func(ctx context.Context, store *prefs.SQLStore, out io.Writer, args []string) error {
		p, err := prefs.ToggleLanguage(ctx, store, prefsReader)
		if err != nil {
			return err
		}
		printPrefs(out, p)
		return nil
	}),
}

var prefsToggleThemeCmd = &cobra.Command{
	Use:   "toggle-theme",
	Short: "Switch between the light and dark theme",
	RunE: withPrefs(func(ctx context.Context, store *prefs.SQLStore, out io.Writer, args []string) error {
		p, err := prefs.ToggleTheme(ctx, store, prefsReader)
		if err != nil {
			return err
		}
		printPrefs(out, p)
		return nil
	}),
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <language|theme> <value>",
	Short: "Set a single preference",
	Args:  cobra.ExactArgs(2),
	RunE: withPrefs(func(ctx context.Context, store *prefs.SQLStore, out io.Writer, args []string) error {
		p, err := prefs.Set(ctx, store, prefsReader, prefKey(args[0]), args[1])
		if err != nil {
			return err
		}
		printPrefs(out, p)
		return nil
	}),
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the reader and their preferences",
	RunE: withPrefs(func(ctx context.Context, store *prefs.SQLStore, out io.Writer, args []string) error {
		if err := store.Forget(ctx, prefsReader); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "Reset preferences for %s\n", prefsReader)
		return nil
	}),
}

// prefKey maps the short names accepted on the command line to storage keys.
func prefKey(name string) string {
	switch strings.ToLower(name) {
	case "language", "lang":
		return prefs.KeyLanguage
	case "theme":
		return prefs.KeyTheme
	}
	return name
}

func printPrefs(out io.Writer, p prefs.Preferences) {
	fmt.Fprintf(out, "reader:   %s\n", prefsReader)
	fmt.Fprintf(out, "language: %s\n", p.Language)
	fmt.Fprintf(out, "theme:    %s\n", p.Theme)
}

func withPrefs(fn func(context.Context, *prefs.SQLStore, io.Writer, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, database, err := openPrefs(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		return fn(cmd.Context(), store, cmd.OutOrStdout(), args)
	}
}

func init() {
	prefsCmd.PersistentFlags().StringVar(&prefsReader, "reader", "cli", "reader id (the value of the reader cookie)")
	prefsCmd.AddCommand(prefsShowCmd, prefsToggleLanguageCmd, prefsToggleThemeCmd, prefsSetCmd, prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}
