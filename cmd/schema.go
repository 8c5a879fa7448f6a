package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/talent-screener/internal/chat"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of transcript files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pretty, err := json.MarshalIndent(chat.TranscriptSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
