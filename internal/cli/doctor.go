package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/config"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/store"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check environment and dependencies",
	Long:  "Validate that configuration, templates, storage, and the API key are properly set up.",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("cheatsheetd doctor: checking your environment")
	fmt.Println()
	allOK := true

	// 1. Go version
	fmt.Printf("  Go version: %s", runtime.Version())
	fmt.Println(" ✓")

	// 2. OS/Arch
	fmt.Printf("  Platform:   %s/%s", runtime.GOOS, runtime.GOARCH)
	fmt.Println(" ✓")

	// 3. API key
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey != "" {
		fmt.Printf("  API key:    set (***%s)", apiKey[max(0, len(apiKey)-4):])
		fmt.Println(" ✓")
	} else {
		fmt.Println("  API key:    NOT SET ✗")
		fmt.Println("    → Set ANTHROPIC_API_KEY environment variable")
		allOK = false
	}

	// 4. Configuration
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Printf("  Config:     FAILED (%s) ✗\n", err)
		allOK = false
	} else if err := config.Validate(cfg); err != nil {
		fmt.Printf("  Config:     INVALID (%s) ✗\n", err)
		allOK = false
	} else {
		fmt.Printf("  Config:     %s v%s", cfg.Name, cfg.Version)
		fmt.Println(" ✓")
	}

	// 5. Templates
	if cfg != nil {
		for _, path := range []string{cfg.Templates.GeneratorPath(), cfg.Templates.CuratorPath()} {
			if _, err := os.Stat(path); err != nil {
				fmt.Printf("  Template:   %s NOT FOUND ✗\n", path)
				allOK = false
			} else {
				fmt.Printf("  Template:   %s ✓\n", path)
			}
		}
	}

	// 6. Store
	if cfg != nil {
		st, err := store.New(cfg.Store.Driver, cfg.Store.Path)
		if err != nil {
			fmt.Printf("  Store:      FAILED (%s) ✗\n", err)
			allOK = false
		} else {
			_ = st.Close()
			fmt.Printf("  Store:      %s (%s)", cfg.Store.Driver, cfg.Store.Path)
			fmt.Println(" ✓")
		}
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed!")
	} else {
		fmt.Println("Some checks failed. See above for details.")
	}

	return nil
}
