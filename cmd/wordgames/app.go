package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mkzafar/wordgames/internal/logger"
	"github.com/mkzafar/wordgames/pkg/config"
	"github.com/mkzafar/wordgames/pkg/dictionary"
	"github.com/mkzafar/wordgames/pkg/finder"
	"github.com/spf13/cobra"
)

// app is what every command needs after startup.
type app struct {
	cfg        *config.Config
	configPath string
	dict       *dictionary.Dictionary
	finder     *finder.Finder
}

// setup configures logging, loads config and applies the persistent flags.
func setup(cmd *cobra.Command, level log.Level) (*config.Config, string, error) {
	logger.Setup(debugMode, level)

	cfg, path, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("dict") {
		cfg.Dict.Path = dictPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

// loadApp additionally loads the dictionary. An empty dictionary is an error only
// when dict.required is set or the caller insists.
func loadApp(cmd *cobra.Command, level log.Level, required bool) (*app, error) {
	cfg, path, err := setup(cmd, level)
	if err != nil {
		return nil, err
	}

	dict, err := dictionary.LoadFile(cfg.Dict.Path)
	if err != nil {
		var loadErr *dictionary.LoadError
		if errors.As(err, &loadErr) && !required && !cfg.Dict.Required {
			log.Errorf("%v, continuing with an empty dictionary", err)
			dict = dictionary.New()
		} else {
			return nil, err
		}
	}
	if dict.Len() == 0 && (required || cfg.Dict.Required) {
		return nil, fmt.Errorf("dictionary %s has no words", cfg.Dict.Path)
	}
	log.Debugf("Dictionary ready: %s words, longest %d", humanize.Comma(int64(dict.Len())), dict.Longest())

	return &app{
		cfg:        cfg,
		configPath: path,
		dict:       dict,
		finder:     finder.New(dict, finder.WithCheckInterval(cfg.Search.CheckInterval)),
	}, nil
}

// cachedSearcher puts the configured LRU in front of the finder.
func (a *app) cachedSearcher() (finder.Searcher, error) {
	cache, err := finder.NewCache(a.finder, a.cfg.Server.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return cache, nil
}
