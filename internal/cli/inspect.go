package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"adsbuilder/internal/domain/build"
	"adsbuilder/internal/domain/bulkcsv"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <build.json>",
		Short: "Summarise a saved build",
		Long:  `Print one line per campaign with its ad group, keyword and extension counts and the number of CSV rows it exports to.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBuildFile(args[0], GetConfig(cmd.Context()).Limits)
			if err != nil {
				return err
			}

			client := b.ClientName
			if client == "" {
				client = "(no client name)"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Client: %s\n", client)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Campaign", "Ad groups", "Keywords", "Negatives", "Sitelinks", "Extensions", "Rows"})

			total := 0
			for i, s := range summarize(b) {
				t.AppendRow(table.Row{i + 1, s.name, s.adGroups, s.keywords, s.negatives, s.sitelinks, s.extensions, s.rows})
				total += s.rows
			}
			t.AppendFooter(table.Row{"", "", "", "", "", "", "Total", total})
			t.Render()
			return nil
		},
	}
}

type campaignSummary struct {
	name       string
	adGroups   int
	keywords   int
	negatives  int
	sitelinks  int
	extensions int
	rows       int
}

func summarize(b *build.Build) []campaignSummary {
	out := make([]campaignSummary, 0, len(b.Campaigns))
	for _, c := range b.Campaigns {
		s := campaignSummary{
			name:       c.Settings.Name,
			adGroups:   len(c.AdGroups),
			negatives:  len(build.SplitLines(c.Settings.CampaignNegatives)),
			extensions: len(c.Extensions.Items()),
			rows:       len(bulkcsv.Records(&build.Build{Campaigns: []build.Campaign{c}})),
		}
		for _, ag := range c.AdGroups {
			s.keywords += len(build.SplitLines(ag.Keywords))
			s.negatives += len(build.SplitLines(ag.AdgroupNegatives))
			s.sitelinks += len(ag.Sitelinks)
		}
		out = append(out, s)
	}
	return out
}
