package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uyuni-project/dump-extract/dumper"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Extract the whole schema and a sample of rows per table, with embeddings replaced by NULL",
	Run:   runSample,
}

func init() {
	addExtractFlags(sampleCmd, 100)
	sampleCmd.Flags().String("stripColumn", dumper.EmbeddingColumn, "Column whose values are replaced by NULL, empty keeps all values")

	bindCommandFlags(sampleCmd)
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) {
	maxRows := viper.GetInt("sample.maxRows")
	if maxRows < 0 {
		log.Fatal().Int("maxRows", maxRows).Msg("maxRows can't be negative")
	}
	options := dumper.Options{
		MaxRows:     maxRows,
		StripColumn: viper.GetString("sample.stripColumn"),
	}

	description := fmt.Sprintf("Extracting: ALL schema + %d rows/table", maxRows)
	switch options.StripColumn {
	case "":
	case dumper.EmbeddingColumn:
		description += " (embeddings removed)"
	default:
		description += fmt.Sprintf(" (%s removed)", options.StripColumn)
	}
	runExtraction(cmd, options, fmt.Sprintf("sample_%drows", maxRows), description)
}
