package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"storefeed/go/catalog"
	"storefeed/go/feeds"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"

	"github.com/spf13/cobra"
)

type feedOptions struct {
	Format       string
	Strategy     string
	PageSize     int
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type renderer func(products []types.Product, opts feeds.Options) ([]byte, error)

var renderers = map[string]renderer{
	"google":        feeds.GoogleShoppingXML,
	"merchant-xml":  feeds.MerchantXML,
	"merchant-json": feeds.MerchantJSON,
	"hood":          feeds.HoodCSV,
	"adcell":        feeds.AdcellCSV,
}

func formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newFeedCmd(root *rootOptions) *cobra.Command {
	opts := &feedOptions{}

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Fetch the catalog and render one feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			render, ok := renderers[opts.Format]
			if !ok {
				return fmt.Errorf("unknown format %q, expected one of %s", opts.Format, strings.Join(formats(), ", "))
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			strategy, err := adminapi.CatalogStrategy(client, catalog.NewFetcher(), opts.Strategy, adminapi.StrategyOptions{
				PageSize:     opts.PageSize,
				PollInterval: opts.PollInterval,
				PollTimeout:  opts.PollTimeout,
			})
			if err != nil {
				return err
			}
			feedOpts := feeds.DefaultOptions(client.Config().ShopDomain)

			body, err := catalog.Transform(cmd.Context(), strategy, func(products []types.Product) ([]byte, error) {
				return render(products, feedOpts)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, root.Out, body)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "google", "Feed format: "+strings.Join(formats(), ", "))
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", adminapi.StrategyREST, "Fetch strategy: paging, rest or bulk")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Products per page for paging strategies, 0 picks the largest page the strategy allows")
	cmd.Flags().DurationVar(&opts.PollInterval, "poll-interval", 2*time.Second, "Bulk export poll interval, 0 polls back to back")
	cmd.Flags().DurationVar(&opts.PollTimeout, "poll-timeout", 10*time.Minute, "Bulk export poll timeout")
	return cmd
}
