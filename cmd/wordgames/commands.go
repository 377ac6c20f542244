package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mkzafar/wordgames/internal/cli"
	"github.com/mkzafar/wordgames/internal/logger"
	"github.com/mkzafar/wordgames/pkg/api"
	"github.com/mkzafar/wordgames/pkg/dictionary"
	"github.com/mkzafar/wordgames/pkg/finder"
	"github.com/mkzafar/wordgames/pkg/hunt"
	"github.com/mkzafar/wordgames/pkg/server"
	"github.com/spf13/cobra"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// searchContext bounds one-off searches, d <= 0 means no limit.
func searchContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

func newServeCmd() *cobra.Command {
	var addr string
	var cacheSize int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, log.InfoLevel, true)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cache-size") {
				a.cfg.Server.CacheSize = cacheSize
			}
			searcher, err := a.cachedSearcher()
			if err != nil {
				return err
			}

			showStartupInfo(a)
			ctx, stop := signalContext()
			defer stop()
			return api.NewServer(a.dict, searcher, a.cfg, logger.New("http")).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "result cache entries, 0 disables (overrides server.cache_size)")
	return cmd
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Interactive anagram prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, log.WarnLevel, false)
			if err != nil {
				return err
			}
			// Reads block on stdin, so Ctrl+C keeps its default behaviour here.
			h := cli.NewInputHandler(a.finder, a.cfg.Search, a.cfg.Server.SearchTimeout(), os.Stdin, os.Stdout)
			return h.Start(cmd.Context())
		},
	}
}

func newIPCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ipc",
		Short: "Answer msgpack requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, log.WarnLevel, false)
			if err != nil {
				return err
			}
			searcher, err := a.cachedSearcher()
			if err != nil {
				return err
			}
			srv := server.NewServer(a.dict, searcher, a.cfg, logger.New("ipc"), os.Stdin, os.Stdout)
			return srv.Start(cmd.Context())
		},
	}
}

func newFindCmd() *cobra.Command {
	var minLength, maxLength int
	cmd := &cobra.Command{
		Use:   "find LETTERS",
		Short: "Print the words spelled by LETTERS, grouped by length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, log.WarnLevel, false)
			if err != nil {
				return err
			}
			letters := args[0]
			if minLength < 0 || maxLength < 0 {
				return fmt.Errorf("--min and --max must not be negative")
			}
			if !cmd.Flags().Changed("min") {
				minLength = a.cfg.Search.MinWordLength
			}

			words := finder.ResultSet{}
			lo, hi, ok := finder.ClampRange(len(letters), minLength, maxLength, 1)
			if !ok {
				// Too few letters for the range, but they still have to be letters.
				if _, err := finder.ParseLetters(letters); err != nil {
					return err
				}
			} else {
				ctx, cancel := searchContext(cmd.Context(), a.cfg.Server.SearchTimeout())
				defer cancel()
				if words, err = a.finder.Find(ctx, letters, lo, hi); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, g := range words.Groups() {
				fmt.Fprintf(out, "%d-letter words:\n", g.Length)
				for _, w := range g.Words {
					fmt.Fprintln(out, w)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minLength, "min", 0, "shortest word length (default search.min_word_length)")
	cmd.Flags().IntVar(&maxLength, "max", 0, "longest word length (default number of letters)")
	return cmd
}

func newHuntCmd() *cobra.Command {
	var minLength, maxLength int
	cmd := &cobra.Command{
		Use:   "hunt ROW...",
		Short: "Solve a word-hunt grid given one argument per row, '.' for empty cells",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, log.WarnLevel, false)
			if err != nil {
				return err
			}
			grid, err := hunt.ParseGrid(args, a.cfg.Hunt.MaxRows, a.cfg.Hunt.MaxCols)
			if err != nil {
				return err
			}
			opts := hunt.Options{MinLength: a.cfg.Hunt.MinWordLength, MaxLength: a.cfg.Hunt.MaxWordLength}
			if cmd.Flags().Changed("min") {
				opts.MinLength = minLength
			}
			if cmd.Flags().Changed("max") {
				opts.MaxLength = maxLength
			}

			ctx, cancel := searchContext(cmd.Context(), a.cfg.Server.SearchTimeout())
			defer cancel()
			matches, err := hunt.Solve(ctx, a.dict, grid, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range matches {
				cells := make([]string, len(m.Path))
				for i, p := range m.Path {
					cells[i] = fmt.Sprintf("%d,%d", p[0], p[1])
				}
				fmt.Fprintf(out, "%-10s %s\n", m.Word, strings.Join(cells, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minLength, "min", 0, "shortest word length (default hunt.min_word_length)")
	cmd.Flags().IntVar(&maxLength, "max", 0, "longest word length (default hunt.max_word_length)")
	return cmd
}

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Build and inspect dictionary files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "build IN OUT",
		Short: "Write a msgpack snapshot of a word list, IN may be - for stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(cmd, log.InfoLevel); err != nil {
				return err
			}
			return buildSnapshot(args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Describe the configured dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, log.WarnLevel, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			format := dictionary.DetectFormat(a.cfg.Dict.Path)
			fmt.Fprintf(out, "path:    %s\n", a.cfg.Dict.Path)
			if info, ok := dictionary.GetFormatInfo(format); ok {
				fmt.Fprintf(out, "format:  %s (%s)\n", info.Description, strings.TrimSpace(strings.Join(info.Extensions, " ")))
			}
			if st, err := os.Stat(a.cfg.Dict.Path); err == nil {
				fmt.Fprintf(out, "size:    %s\n", humanize.Bytes(uint64(st.Size())))
			}
			fmt.Fprintf(out, "words:   %s\n", humanize.Comma(int64(a.dict.Len())))
			fmt.Fprintf(out, "longest: %d\n", a.dict.Longest())
			fmt.Fprintf(out, "config:  %s\n", a.configPath)
			return nil
		},
	})
	return cmd
}

func buildSnapshot(in, out string) error {
	var dict *dictionary.Dictionary
	if in == "-" {
		words, err := dictionary.ReadLines(os.Stdin)
		if err != nil {
			return err
		}
		dict = dictionary.New(words...)
	} else {
		var err error
		if dict, err = dictionary.LoadFile(in); err != nil {
			return err
		}
	}
	if dict.Len() == 0 {
		return fmt.Errorf("no words read from %s", in)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := dict.WriteSnapshot(f); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Infof("Wrote %s words to %s", humanize.Comma(int64(dict.Len())), out)
	return nil
}

// showStartupInfo displays some basic info before serving.
func showStartupInfo(a *app) {
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", a.configPath)
	log.Infof("dictionary: ( %s ) %s words", a.cfg.Dict.Path, humanize.Comma(int64(a.dict.Len())))
	log.Infof("cache: %d entries, search timeout %v", a.cfg.Server.CacheSize, a.cfg.Server.SearchTimeout())
	log.Info("Press Ctrl+C to exit")
}
