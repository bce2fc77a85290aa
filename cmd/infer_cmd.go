// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/searchhintio/searchhint/cmd/config"
	"github.com/searchhintio/searchhint/pkg/catalog"
	"github.com/searchhintio/searchhint/pkg/hint"
	"github.com/searchhintio/searchhint/pkg/sampler"
	"github.com/searchhintio/searchhint/pkg/searchindex"
)

var inferCmd = &cobra.Command{
	Use:     "infer",
	Short:   "Infers search index field types for the assets of a collection and optionally applies the index definitions",
	PreRun:  inferFlagBinding,
	RunE:    withSignalWatcher(infer),
	Example: `
	searchhint infer --collection <collection-id>
	searchhint infer --guid <asset-guid> --sample
	searchhint infer --collection <collection-id> --sample --apply
	searchhint infer -c purview.yaml --json
	`,
}

func infer(ctx context.Context) error {
	logger := newLogger()

	client, err := newCatalogClient(logger)
	if err != nil {
		return err
	}

	runnerCfg := config.ParseRunnerConfig()
	opts := []hint.Option{hint.WithLogger(logger)}
	if runnerCfg.Sample {
		opts = append(opts, hint.WithSampler(sampler.New(config.ParseSamplerConfig(), logger)))
	}
	if runnerCfg.Apply {
		store, err := searchindex.NewHTTPStore(config.ParseStoreConfig(), searchindex.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("creating search store: %w", err)
		}
		opts = append(opts, hint.WithStore(store))
	}

	runner, err := hint.NewRunner(runnerCfg, client, opts...)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	var reports []hint.AssetReport
	if guid := viper.GetString("guid"); guid != "" {
		reports = []hint.AssetReport{runner.ProcessAsset(ctx, "", catalog.Asset{GUID: guid})}
	} else {
		reports, err = runner.Run(ctx, viper.GetString("SEARCHHINT_COLLECTION_ID"), viper.GetString("keywords"))
		if err != nil {
			return err
		}
	}

	if viper.GetBool("json") {
		return printJSON(reportsOutput(reports))
	}
	printReports(reports)
	return nil
}

func printReports(reports []hint.AssetReport) {
	failed := 0
	for i := range reports {
		report := &reports[i]
		if report.Err != nil {
			failed++
			pterm.Error.Printfln("%s: %v", report.Asset.Name, report.Err)
			continue
		}

		pterm.DefaultSection.Printfln("%s -> %s", report.Asset.Name, report.IndexName)
		data := pterm.TableData{{"Column", "Field type", "Nullable", "Collection"}}
		for _, col := range report.Columns {
			data = append(data, []string{
				col.Name,
				col.FieldType.String(),
				strconv.FormatBool(col.Nullable),
				strconv.FormatBool(col.IsCollection),
			})
		}
		//nolint:errcheck // display only
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()

		switch {
		case report.Applied:
			pterm.Success.Printfln("index %q applied", report.IndexName)
		case report.Sampled:
			pterm.Info.Printfln("inferred from sampled data")
		default:
			pterm.Info.Printfln("inferred from declared column metadata")
		}
	}

	if failed > 0 {
		pterm.Warning.Printfln("%d of %d assets could not be processed", failed, len(reports))
	}
}

// assetReportOutput is the JSON shape of a report: errors are rendered as
// strings so the output stays serialisable.
type assetReportOutput struct {
	Asset           catalog.Asset  `json:"asset"`
	IndexName       string         `json:"index_name,omitempty"`
	IndexDefinition map[string]any `json:"index_definition,omitempty"`
	Sampled         bool           `json:"sampled"`
	Applied         bool           `json:"applied"`
	Error           string         `json:"error,omitempty"`
}

func reportsOutput(reports []hint.AssetReport) []assetReportOutput {
	out := make([]assetReportOutput, 0, len(reports))
	for _, report := range reports {
		o := assetReportOutput{
			Asset:           report.Asset,
			IndexName:       report.IndexName,
			IndexDefinition: report.IndexDefinition,
			Sampled:         report.Sampled,
			Applied:         report.Applied,
		}
		if report.Err != nil {
			o.Error = report.Err.Error()
		}
		out = append(out, o)
	}
	return out
}

func inferFlagBinding(cmd *cobra.Command, _ []string) {
	bindFlags(cmd.Flags(), map[string]string{
		"SEARCHHINT_COLLECTION_ID": "collection",
		"SEARCHHINT_DUMP_DIR":      "dump-dir",
		"guid":                     "guid",
		"sample":                   "sample",
		"apply":                    "apply",
		"concurrency":              "concurrency",
		"index-name-template":      "index-name-template",
		"json":                     "json",
	})
}
