package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"sentinel/internal/model"
	"sentinel/internal/utils"

	"github.com/spf13/cobra"
)

func scanCmd(e *env) *cobra.Command {
	var offline, asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <domain>...",
		Short: "Evaluate one or more domains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var results []model.ScanResult
			for _, raw := range args {
				if !utils.IsAcceptableInput(raw) {
					return fmt.Errorf("invalid domain %q", raw)
				}
				results = append(results, e.engine.Evaluate(cmd.Context(), raw, !offline))
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.Domain, strings.ToUpper(string(r.Status)), r.Registrar)
				for _, d := range r.Details {
					fmt.Fprintf(out, "  - %s\n", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "skip the live DNSSEC check")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func anchorsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "anchors",
		Short: "List offline trust anchors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range e.anchors.Domains() {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
