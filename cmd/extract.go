// SPDX-FileCopyrightText: 2026 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uyuni-project/dump-extract/dumper"
	"github.com/uyuni-project/dump-extract/utils"
)

const megabyte = 1024 * 1024

func addExtractFlags(cmd *cobra.Command, defaultMaxRows int) {
	cmd.Flags().String("input", "", "PostgreSQL plain text dump to read, .gz files are decompressed")
	cmd.Flags().String("output", "", "Extract to write, overwritten if present; derived from input when empty")
	cmd.Flags().Int("maxRows", defaultMaxRows, "Data rows kept per table, 0 keeps all of them")
	cmd.Flags().String("statsFile", "", "Write the extraction stats as JSON to this file")
	cmd.Args = cobra.NoArgs
}

// runExtraction reads the flags shared by the extraction commands and runs the dump filter
func runExtraction(cmd *cobra.Command, options dumper.Options, outputSuffix string, description string) {
	key := func(flag string) string { return cmd.Name() + "." + flag }

	input := viper.GetString(key("input"))
	if input == "" {
		log.Fatal().Msg("No input dump given, use --input")
	}
	input = utils.GetAbsPath(input)
	output := viper.GetString(key("output"))
	if output == "" {
		output = defaultOutputPath(input, outputSuffix)
	}
	output = utils.GetAbsPath(output)

	log.Info().Msgf("Processing %s...", input)
	log.Info().Msg(description)

	result, err := dumper.ExtractFile(input, output, options)
	if err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}
	if result.LimitReached {
		log.Warn().Strs("tables", result.LimitedTables).Msg("Size limit reached, data rows of these tables were dropped")
	}

	if statsFile := viper.GetString(key("statsFile")); statsFile != "" {
		if err := dumper.WriteStats(utils.GetAbsPath(statsFile), result); err != nil {
			log.Fatal().Err(err).Msg("Unable to write stats file")
		}
	}

	log.Info().
		Int("tables", len(result.Stats)).
		Int("droppedRows", result.DroppedRows).
		Str("size", humanize.IBytes(uint64(result.BytesWritten))).
		Msgf("Done! Output: %s", output)
}

// defaultOutputPath places the extract next to the input, keeping its compression
func defaultOutputPath(input string, suffix string) string {
	dir, base := filepath.Split(input)
	compressed := strings.HasSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".sql")

	result := fmt.Sprintf("%s_%s.sql", base, suffix)
	if compressed {
		result += ".gz"
	}
	return filepath.Join(dir, result)
}
