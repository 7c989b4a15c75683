package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectContentDir looks for a book in the usual places of the current
// directory and returns the first directory holding an en/book.yaml.
func detectContentDir() string {
	for _, dir := range []string{"books", "content", "book"} {
		if _, err := os.Stat(filepath.Join(dir, "en", "book.yaml")); err == nil {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to unseenbook! Let's configure your reader.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Default language.
	langPrompt := promptui.Select{
		Label: "Default language for new readers",
		Items: []string{"en (English)", "ar (العربية)"},
	}
	langIdx, _, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.Preferences.DefaultLanguage = []string{"en", "ar"}[langIdx]

	// 2. Default theme.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: []string{"light", "dark"},
	}
	_, cfg.Preferences.DefaultTheme, err = themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. Content directory.
	dirPrompt := promptui.Prompt{
		Label:   "Book directory (leave blank for the built-in book)",
		Default: detectContentDir(),
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.Content.Dir = strings.TrimSpace(dir)

	// 5. Syntax highlighting.
	hlPrompt := promptui.Select{
		Label: "Colour code samples by language",
		Items: []string{"no", "yes"},
	}
	hlIdx, _, err := hlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight selection: %w", err)
	}
	cfg.Markdown.Highlight = hlIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
