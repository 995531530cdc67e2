package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/adkit/feed"
)

// feedCmd groups the RTB feed subcommands
var feedCmd = &cobra.Command{
	Use:               "feed",
	Short:             "Manage RTB feeds",
	PersistentPreRunE: initializeApp,
}

var feedGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Retrieve one or more feeds",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		results := fetchAll(cmd.Context(), ids, concurrency, adkitClient.Feeds.Retrieve)

		feeds := make([]*feed.Response, 0, len(results))
		for _, r := range results {
			if r.Err == nil {
				feeds = append(feeds, r.Response)
			}
		}

		if err := printJSON(cmd.OutOrStdout(), feeds); err != nil {
			return err
		}

		if failed := countFailures(results); failed > 0 {
			return fmt.Errorf("%d of %d feeds could not be retrieved", failed, len(ids))
		}
		return nil
	},
}

var feedCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a feed from a payload file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload[feed.Feed](payloadFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		resp, err := adkitClient.Feeds.Create(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("failed to create feed: %w", err)
		}

		logger.Info().Int64("id", resp.Data.Feed.ID).Msg("Feed created")
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var feedUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		payload, err := readPayload[feed.Feed](payloadFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		resp, err := adkitClient.Feeds.Update(cmd.Context(), ids[0], payload)
		if err != nil {
			return fmt.Errorf("failed to update feed %d: %w", ids[0], err)
		}

		logger.Info().Int64("id", ids[0]).Msg("Feed updated")
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedGetCmd, feedCreateCmd, feedUpdateCmd)

	feedGetCmd.Flags().IntVarP(&concurrency, "concurrency", "c", DefaultBatchSize, "maximum concurrent requests")

	for _, c := range []*cobra.Command{feedCreateCmd, feedUpdateCmd} {
		c.Flags().StringVar(&payloadFile, "file", "", "JSON or YAML payload file, - for stdin")
		_ = c.MarkFlagRequired("file")
	}
}
