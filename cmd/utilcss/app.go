package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/configfile"
	"github.com/yacobolo/utilcss/sheet"
)

// app is an engine built from the current settings
type app struct {
	settings settings
	log      *zap.Logger
	engine   *utilcss.Engine
	sheet    *sheet.Sheet
}

// newApp builds the engine. Diagnostics go to stderr.
func newApp(stderr io.Writer) (*app, error) {
	s := buildSettings()
	log := newLogger(stderr, s.Verbose, s.Quiet)

	styleFile, err := loadStyles(s.Styles, log)
	if err != nil {
		return nil, err
	}

	var fn utilcss.ConfigFunc
	var resolveErr error
	if styleFile != nil {
		fn = styleFile.ConfigFunc(&resolveErr)
	}

	styles := sheet.New(sheet.WithKey(s.Key), sheet.WithLogger(log))
	engine := utilcss.New(fn, utilcss.WithLogger(log), utilcss.WithRegistrar(styles))
	if resolveErr != nil {
		return nil, fmt.Errorf("%s: %w", s.Styles, resolveErr)
	}

	return &app{settings: s, log: log, engine: engine, sheet: styles}, nil
}

// loadStyles loads the styles file at path. A missing default styles file
// means the built-in configuration; any other missing path is an error.
func loadStyles(path string, log *zap.Logger) (*configfile.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && path == defaultStylesFile {
			log.Debug("no styles file, using defaults", zap.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("styles file: %w", err)
	}

	return configfile.Load(path, log)
}
