// Copyright 2025 The Wordgames Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordgames command.

wordgames finds every dictionary word that can be spelled from a handful of letters
and solves word-hunt grids. The same search runs behind an interactive prompt, an
HTTP API and a msgpack IPC loop.

# Usage

Serve the HTTP API on :8081:

	wordgames serve

Play at the prompt, one round per length and letters pair:

	wordgames play

One-off searches:

	wordgames find cats --min 3 --max 4
	wordgames hunt cat. dogs ears tens

Prebuild a msgpack snapshot from a text word list and inspect it:

	wordgames dict build dictionary.txt words.msgpack
	wordgames dict info --dict words.msgpack

# Configuration

Settings live in a TOML file, created with defaults on first run at
$XDG_CONFIG_HOME/wordgames/config.toml unless --config points elsewhere:

	[server]
	addr = ":8081"
	search_timeout_ms = 2000
	cache_size = 512

	[dict]
	path = "dictionary.txt"
	required = false

	[search]
	min_letters = 3
	max_letters = 15
	min_word_length = 3

Flags given on the command line win over the file.
*/
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.4.0"
	AppName = "wordgames"
	gh      = "https://github.com/mkzafar/wordgames"
)

var (
	configPath string
	dictPath   string
	debugMode  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var showVersion bool
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Anagram finder and word-hunt solver",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show current version")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml")
	rootCmd.PersistentFlags().StringVar(&dictPath, "dict", "", "word list or snapshot (overrides dict.path)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "toggle debug logging")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newIPCCmd())
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newHuntCmd())
	rootCmd.AddCommand(newDictCmd())
	return rootCmd
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordgames ] every word hiding in your letters")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available commands")
	logger.Print("Github Repo", "gh", gh)
}
