package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/averhoef/thesisflow/internal/cli"
	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/llm"
	"github.com/averhoef/thesisflow/internal/proposer"
	"github.com/averhoef/thesisflow/internal/replan"
	"github.com/averhoef/thesisflow/internal/service"
	"github.com/averhoef/thesisflow/internal/toolreg"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.thesisflow/thesisflow.db
	dbPath := os.Getenv("THESISFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".thesisflow", "thesisflow.db")
	}

	// Policy file: env var or default ~/.thesisflow/policy.toml. Missing
	// file means stock policy.
	policyPath := os.Getenv("THESISFLOW_POLICY")
	if policyPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			policyPath = filepath.Join(home, ".thesisflow", "policy.toml")
		}
	}
	policy, err := config.LoadPolicy(policyPath)
	if err != nil {
		return fmt.Errorf("loading policy: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	clk := clock.System{}

	// Proposer selection: the model backend when enabled and reachable,
	// the deterministic template proposer otherwise.
	llmCfg := llm.LoadConfig()
	var llmClient llm.Client
	prop := proposer.NewTemplateProposer()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient = llm.NewOllamaClient(llmCfg, observer)
		if llmClient.Available(context.Background()) {
			prop = proposer.NewLLMProposer(llmClient)
		}
	}

	tools := toolreg.NewRegistry(toolreg.NewCitationTool())
	if llmClient != nil {
		tools.Register(toolreg.NewGrammarTool(llmClient))
		tools.Register(toolreg.NewSummarizerTool(llmClient))
	}

	app := &cli.App{
		Plans:    service.NewPlanService(database, prop, policy, clk),
		Progress: service.NewProgressService(database, policy, clk),
		Replans:  service.NewReplanService(database, replan.NewEngine(prop, policy, clk)),
		Tools:    tools,
		Policy:   policy,
		Clock:    clk,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
