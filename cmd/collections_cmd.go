// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/searchhintio/searchhint/cmd/config"
	"github.com/searchhintio/searchhint/pkg/catalog"
	loglib "github.com/searchhintio/searchhint/pkg/log"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Lists the collections of the data catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sp, _ := pterm.DefaultSpinner.WithText("fetching catalog collections...").Start()

		client, err := newCatalogClient(newLogger())
		if err != nil {
			sp.Fail(err.Error())
			return err
		}

		collections, err := client.ListCollections(ctx)
		if err != nil {
			sp.Fail("failed to list collections")
			return err
		}
		sp.Success(fmt.Sprintf("found %d collections", len(collections)))

		if cmd.Flags().Lookup("json").Value.String() == trueStr {
			return printJSON(collections)
		}

		data := pterm.TableData{{"Name", "Friendly name"}}
		for _, c := range collections {
			data = append(data, []string{c.Name, c.FriendlyName})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
	Example: `
	searchhint collections --purview-account <account-name>
	searchhint collections -c purview.env --json
	`,
}

func newCatalogClient(logger loglib.Logger) (*catalog.AtlasClient, error) {
	client, err := catalog.NewAtlasClient(config.ParseCatalogConfig(), catalog.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}
	return client, nil
}
