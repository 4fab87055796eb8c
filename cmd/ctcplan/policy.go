package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctcplan/ctc-planner/internal/calculation"
	"github.com/ctcplan/ctc-planner/internal/config"
	"github.com/ctcplan/ctc-planner/internal/output"
)

func newPolicyCmd(a *app) *cobra.Command {
	var (
		writeTo string
		example bool
	)
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show the active tax policy or write it as a starting point",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewPolicyLoader()
			policy := a.engine.Policy()
			if example {
				policy = *loader.ExamplePolicy()
			}
			if writeTo != "" {
				if err := loader.SaveToFile(&policy, writeTo); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "policy written to %s\n", writeTo)
				return nil
			}
			data, err := loader.Marshal(&policy)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			fmt.Fprintln(out)
			for _, line := range calculation.PolicyAssumptions(policy) {
				fmt.Fprintf(out, "# %s\n", line)
			}
			if cliff, ok := calculation.NewCalculationEngineWithPolicy(policy).FindRebateCliff(); ok {
				fmt.Fprintf(out, "# Rebate cliff: take-home %s at CTC %s drops by %s; recovers at CTC %s\n",
					output.FormatCurrency(cliff.TakeHomeAtCliff), output.FormatCurrency(cliff.CliffCTC),
					output.FormatCurrency(cliff.DropJustAbove), output.FormatCurrency(cliff.RecoveryCTC))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&writeTo, "write", "w", "", "write the policy YAML to this file")
	cmd.Flags().BoolVar(&example, "example", false, "use the reference policy instead of the active one")
	return cmd
}
