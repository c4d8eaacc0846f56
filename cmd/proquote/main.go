package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/proquote/internal/cli"
	"github.com/alexanderramin/proquote/internal/config"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// PROQUOTE_CONFIG overrides ~/.proquote/config.toml
	configPath := os.Getenv("PROQUOTE_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := &cli.App{
		Config:     cfg,
		ConfigPath: configPath,
		In:         os.Stdin,
		Observer:   service.NoopUseCaseObserver{},
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if cfg.Logging.UseCases {
		app.Observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Intelligence services are only wired when LLM is enabled.
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewOllamaClient(cfg.LLM, observer)

		app.Collab = service.Collaborators{
			Translator:    intelligence.NewTranslatorService(client, cfg.LLM.ConfidenceThreshold),
			Oracle:        intelligence.NewSalaryOracle(client),
			Extractor:     intelligence.NewExtractionService(client, cfg.Pricing.DefaultProfitMargin),
			TechSuggester: intelligence.NewTechSuggestService(client),
		}
	}

	return cli.NewRootCmd(app).Execute()
}
