// SPDX-FileCopyrightText: 2023 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uyuni-project/dump-extract/dumper"
	"github.com/uyuni-project/dump-extract/schemareader"
	"github.com/uyuni-project/dump-extract/utils"
)

// dotCmd represents the dot command
var dotCmd = &cobra.Command{
	Use:    "dot",
	Short:  "export the tables of a dump as dot diagram",
	Hidden: true,
	Args:   cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		input := viper.GetString("dot.input")
		if input == "" {
			log.Fatal().Msg("No input dump given, use --input")
		}
		source, err := dumper.OpenInput(utils.GetAbsPath(input))
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to open dump")
		}
		defer source.Close()

		tables, err := schemareader.ReadTables(source)
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to read dump")
		}
		schemareader.DumpToGraphviz(os.Stdout, tables, viper.GetString("dot.highlight"))
	},
}

func init() {
	dotCmd.Flags().String("input", "", "PostgreSQL plain text dump to read, .gz files are decompressed")
	dotCmd.Flags().String("highlight", dumper.EmbeddingColumn, "Column to highlight in every table")

	bindCommandFlags(dotCmd)
	rootCmd.AddCommand(dotCmd)
}
