// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/searchhintio/searchhint/pkg/catalog"
)

var assetsCmd = &cobra.Command{
	Use:    "assets",
	Short:  "Searches the assets registered in a catalog collection",
	PreRun: assetsFlagBinding,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sp, _ := pterm.DefaultSpinner.WithText("searching catalog assets...").Start()

		client, err := newCatalogClient(newLogger())
		if err != nil {
			sp.Fail(err.Error())
			return err
		}

		assets, err := client.SearchAssets(ctx, &catalog.SearchRequest{
			CollectionID: viper.GetString("SEARCHHINT_COLLECTION_ID"),
			Keywords:     viper.GetString("keywords"),
			Limit:        viper.GetInt("limit"),
		})
		if err != nil {
			sp.Fail("failed to search assets")
			return err
		}
		sp.Success(fmt.Sprintf("found %d assets", len(assets)))

		if cmd.Flags().Lookup("json").Value.String() == trueStr {
			return printJSON(assets)
		}

		data := pterm.TableData{{"GUID", "Name", "Entity type", "Qualified name"}}
		for _, a := range assets {
			data = append(data, []string{a.GUID, a.Name, a.EntityType, a.QualifiedName})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
	Example: `
	searchhint assets --collection <collection-id>
	searchhint assets --collection <collection-id> --keywords customer --json
	`,
}

func assetsFlagBinding(cmd *cobra.Command, _ []string) {
	bindFlags(cmd.Flags(), map[string]string{
		"SEARCHHINT_COLLECTION_ID": "collection",
		"keywords":                 "keywords",
		"limit":                    "limit",
	})
}
