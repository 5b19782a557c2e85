// SPDX-FileCopyrightText: 2026 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uyuni-project/dump-extract/dumper"
)

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Extract the whole schema and as much data as fits a target size, embeddings included",
	Run:   runLimit,
}

func init() {
	addExtractFlags(limitCmd, 1000)
	limitCmd.Flags().Float64("targetSize", 50, "Target size of the extract in MB")

	bindCommandFlags(limitCmd)
	rootCmd.AddCommand(limitCmd)
}

func runLimit(cmd *cobra.Command, args []string) {
	maxRows := viper.GetInt("limit.maxRows")
	if maxRows < 0 {
		log.Fatal().Int("maxRows", maxRows).Msg("maxRows can't be negative")
	}
	targetSize := viper.GetFloat64("limit.targetSize")
	if targetSize <= 0 {
		log.Fatal().Float64("targetSize", targetSize).Msg("targetSize must be positive")
	}
	options := dumper.Options{
		MaxRows:    maxRows,
		TargetSize: int64(targetSize * megabyte),
	}

	description := fmt.Sprintf("Extracting: ALL schema + up to %d rows/table, target size %s (embeddings retained)",
		maxRows, humanize.IBytes(uint64(options.TargetSize)))
	runExtraction(cmd, options, "limit_"+strconv.FormatFloat(targetSize, 'f', -1, 64)+"mb", description)
}
