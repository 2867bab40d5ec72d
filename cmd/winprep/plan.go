package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what winprep would change",
	Long: `Plan loads the configuration and checks every step against this machine
without changing anything.

Identity steps appear only when the configuration sets identity.name and
identity.email, because plan never prompts.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p := newProvisioner(cmd.OutOrStdout(), logger)
	plan, err := p.Plan(cmd.Context(), cfgFile)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	p.PrintPlan(plan)
	return nil
}
