package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/adkit/campaign"
	"github.com/s0up4200/adkit/filter"
)

var (
	filterExpr  string
	payloadFile string
	concurrency int
)

// campaignCmd groups the campaign subcommands
var campaignCmd = &cobra.Command{
	Use:               "campaign",
	Short:             "Manage campaigns",
	PersistentPreRunE: initializeApp,
}

var campaignGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Retrieve one or more campaigns",
	Long: `Retrieve campaigns by id. Multiple ids are fetched concurrently.

Use --filter to print only campaigns matching an expression over the
campaign fields, for example:

  adkit campaign get 1 2 3 --filter 'general_information.status == "active"'
  adkit campaign get 1 2 --filter '"DE" in targeting.countries'
  adkit campaign get 1 2 --filter 'icontains(general_information.name, "sale")'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCampaignGet,
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign from a payload file",
	Long: `Create a campaign. Fields missing from the payload are filled from the
default template before the request is sent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload[campaign.Campaign](payloadFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		resp, err := adkitClient.Campaigns.Create(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("failed to create campaign: %w", err)
		}

		logger.Info().Int64("id", resp.Data.Campaign.ID).Msg("Campaign created")
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var campaignUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCampaignWrite(cmd, args, adkitClient.Campaigns.Update)
	},
}

var campaignPatchCmd = &cobra.Command{
	Use:   "patch <id>",
	Short: "Update selected campaign fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCampaignWrite(cmd, args, adkitClient.Campaigns.PartialUpdate)
	},
}

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignGetCmd, campaignCreateCmd, campaignUpdateCmd, campaignPatchCmd)

	campaignGetCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	campaignGetCmd.Flags().IntVarP(&concurrency, "concurrency", "c", DefaultBatchSize, "maximum concurrent requests")

	for _, c := range []*cobra.Command{campaignCreateCmd, campaignUpdateCmd, campaignPatchCmd} {
		c.Flags().StringVar(&payloadFile, "file", "", "JSON or YAML payload file, - for stdin")
		_ = c.MarkFlagRequired("file")
	}
}

func runCampaignGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	var match *filter.Filter
	if filterExpr != "" {
		match, err = filter.NewCompiler().Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", match.Expression()).Msg("Filtering campaigns")
	}

	results := fetchAll(cmd.Context(), ids, concurrency, adkitClient.Campaigns.Retrieve)

	matched := make([]*campaign.Response, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if match != nil {
			ok, err := match.Match(r.Response.Data.Campaign)
			if err != nil {
				logger.Warn().Err(err).Int64("id", r.ID).Msg("Filter evaluation failed")
				continue
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, r.Response)
	}

	if err := printJSON(cmd.OutOrStdout(), matched); err != nil {
		return err
	}

	if failed := countFailures(results); failed > 0 {
		return fmt.Errorf("%d of %d campaigns could not be retrieved", failed, len(ids))
	}
	return nil
}

type campaignWriter func(ctx context.Context, id int64, c *campaign.Campaign) (*campaign.Response, error)

func runCampaignWrite(cmd *cobra.Command, args []string, write campaignWriter) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	payload, err := readPayload[campaign.Campaign](payloadFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	resp, err := write(cmd.Context(), ids[0], payload)
	if err != nil {
		return fmt.Errorf("failed to update campaign %d: %w", ids[0], err)
	}

	logger.Info().Int64("id", ids[0]).Msg("Campaign updated")
	return printJSON(cmd.OutOrStdout(), resp)
}
