package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/uyuni-project/dump-extract/utils"
)

var rootCmd = &cobra.Command{
	Use:     "dump-extract",
	Short:   "Reduce PostgreSQL dumps to a shareable extract",
	Version: "0.1.0",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

var cfgFile string
var logLevel string
var logFile string
var cpuProfile string
var memProfile string

var cpuProfileFile *os.File

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Location of configuration file")
	rootCmd.PersistentFlags().String("logLevel", "info", "application log level")
	rootCmd.PersistentFlags().String("logFile", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().String("cpuProfile", "", "cpuProfile export folder location")
	rootCmd.PersistentFlags().String("memProfile", "", "memProfile export folder location")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		log.Warn().Err(err).Msg("Failed to bind PFlags")
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logLevel = viper.GetString("logLevel")
		logFile = viper.GetString("logFile")
		cpuProfile = viper.GetString("cpuProfile")
		memProfile = viper.GetString("memProfile")

		logInit()
		cpuProfileInit()
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		cpuProfileTearDown()
		memProfileDump()
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(utils.GetAbsPath(cfgFile))

		if err := viper.ReadInConfig(); err != nil {
			log.Panic().Err(err).Msg("Failed to read config file")
		}
	}
}

// bindCommandFlags exposes the command flags to viper under "<command>.<flag>",
// so a config file can set them per command
func bindCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if err := viper.BindPFlag(cmd.Name()+"."+flag.Name, flag); err != nil {
			log.Warn().Err(err).Str("flag", flag.Name).Msg("Failed to bind PFlag")
		}
	})
}

func logCallerMarshalFunction(file string, line int) string {
	paths := strings.Split(file, "/")
	callerFile := file
	foundSubDir := false
	for _, currentPath := range paths {
		if foundSubDir {
			if callerFile != "" {
				callerFile = callerFile + "/"
			}
			callerFile = callerFile + currentPath
		} else {
			if strings.Contains(currentPath, "dump-extract") {
				foundSubDir = true
				callerFile = ""
			}
		}
	}
	return callerFile + ":" + strconv.Itoa(line)
}

func logInit() {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}}
	if logFile != "" {
		f, err := os.OpenFile(utils.GetAbsPath(logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file %s: %v\n", logFile, err)
		} else {
			writers = append(writers, f)
		}
	}

	multi := zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Caller().Logger()
	zerolog.CallerMarshalFunc = logCallerMarshalFunction
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Msg("Dump extract started")
}

func cpuProfileInit() {
	if cpuProfile != "" {
		f, err := os.Create(filepath.Join(utils.GetAbsPath(cpuProfile), "cpu_profile.prof"))
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile: ")
			return
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			log.Panic().Err(err).Msg("could not start CPU profile: ")
		}
		cpuProfileFile = f
	}
}

func cpuProfileTearDown() {
	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		cpuProfileFile.Close()
		cpuProfileFile = nil
	}
}

func memProfileDump() {
	if len(memProfile) == 0 {
		return
	}
	folder := utils.GetAbsPath(memProfile)
	if err := utils.ValidateExistingFolder(folder); err != nil {
		log.Error().Err(err).Msgf("could not use memory profile folder: %s", folder)
		return
	}
	fileName := filepath.Join(folder, fmt.Sprintf("memory_profile_%d.prof", time.Now().Unix()))
	f, err := os.Create(fileName)
	if err != nil {
		log.Error().Err(err).Msg(fmt.Sprintf("could not create memory profile file: %s", fileName))
		return
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Error().Err(err).Msg("could not write memory profile: ")
	}
}
