// Copyright © 2026 Lakeland Data

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lakeadm",
	Short: "lakeadm administers a lakeland linked-data repository",
	Long: `lakeadm administers a lakeland linked-data repository.

A repository persists two kinds of state: a graph store holding the RDF
metadata of every resource, and a binary store holding payload bytes.
lakeadm bootstraps both stores, reports aggregate statistics, verifies
content fixity and referential integrity, removes orphan artifacts and
dumps/loads portable backups.

It operates on the stores directly, outside normal request handling:
stop the repository server before running destructive commands.
`,
}

var config *CLIConfig

// used to patch over calls to os.Exit() during test
var logFatalln = log.Fatalln
var logFatalf = log.Fatalf
var osExit = os.Exit

// infoLogger writes informative messages to os.Stdout without
// cluttering expected output in tests.
var infoLogger = log.New(os.Stdout, "", 0)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&lakeadmFlags.root.logLevel, "loglevel", "info",
		"log level (debug|info|warn|error|none)")
	rootCmd.PersistentFlags().BoolVar(&lakeadmFlags.root.forceYes, "force-yes", false,
		"skip confirmation prompts on destructive commands")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("graphstore", defaultGraphStorePath)
	viper.SetDefault("blobstore", defaultBlobStorePath)
	viper.SetDefault("namespace", defaultNamespace)
	viper.SetDefault("digest", defaultDigestAlgorithm)
	if os.Getenv("LAKELAND_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("LAKELAND_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.lakeland")
		viper.AddConfigPath("/etc/lakeland")
		viper.SetConfigName("lakeland")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}
