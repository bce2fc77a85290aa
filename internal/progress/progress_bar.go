// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

type Bar interface {
	Add(int) error
	Close() error
}

type ProgressBar struct {
	*progressbar.ProgressBar
}

// NewAssetBar returns a bar tracking how many catalog assets have been
// processed so far.
func NewAssetBar(total int, description string) *ProgressBar {
	return &ProgressBar{
		ProgressBar: progressbar.NewOptions(total,
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetWidth(20),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription(description),
			progressbar.OptionOnCompletion(func() {
				fmt.Printf("\n") //nolint:forbidigo
			}),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			})),
	}
}
