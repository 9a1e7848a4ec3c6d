package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitbridge.dev/gitbridge/internal/dispatch"
)

// newInvokeCmd creates the invoke command, the machine-facing entry point:
// one operation name plus a JSON argument object in, one JSON envelope out.
func newInvokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <operation> [json-args]",
		Short: "Run a façade operation with JSON arguments and print the JSON result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, splog, err := openFacade()
			if err != nil {
				return err
			}
			defer func() { _ = splog.Close() }()

			var payload json.RawMessage
			if len(args) == 2 {
				payload = json.RawMessage(args[1])
			}

			result := dispatch.New(facade).Invoke(cmd.Context(), args[0], payload)

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, result, "", "  "); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), string(result))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}
