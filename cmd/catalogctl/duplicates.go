package main

import (
	"encoding/json"
	"fmt"

	"storefeed/go/catalog"
	"storefeed/go/duplicates"
	"storefeed/go/shopify/adminapi"

	"github.com/spf13/cobra"
)

func newDuplicatesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "Report the older products of every SKU shared by several active products",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			strategy, err := adminapi.CatalogStrategy(client, catalog.NewFetcher(), adminapi.StrategyREST, adminapi.StrategyOptions{
				Fields: duplicates.Fields,
			})
			if err != nil {
				return err
			}

			report, err := catalog.Transform(cmd.Context(), strategy, duplicates.Find)
			if err != nil {
				return err
			}
			body, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshalling duplicate report:\n>>> %w", err)
			}
			return writeOutput(cmd, root.Out, append(body, '\n'))
		},
	}
}
