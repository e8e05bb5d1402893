package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gantty/internal/api"
	"gantty/internal/config"
	"gantty/internal/store"
	"gantty/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	serverURL := flag.String("server", "", "API base URL (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gantty %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		cfgPath = ""
	}
	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *serverURL != "" {
		cfg.APIBaseURL = *serverURL
	}

	st := store.New(api.NewClient(cfg.APIBaseURL))

	app := ui.NewApp(st, cfg, cfgPath)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
