package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/mdconverter"
)

// fileConfig is the on-disk configuration:
//
//	render:
//	  namespace: acme
//	  bulletMarker: "*"
//	  unknownBlocks: skip
//	parse:
//	  unclosedFence: paragraph
type fileConfig struct {
	Render renderFileConfig          `yaml:"render"`
	Parse  mdconverter.ReverseConfig `yaml:"parse"`
}

type renderFileConfig struct {
	converter.Config `yaml:",inline"`
	BulletMarker     string `yaml:"bulletMarker,omitempty"`
}

// loadConfigFile decodes path over the given configs. Keys absent from the
// file keep their incoming values; unknown keys are rejected.
func loadConfigFile(path string, render converter.Config, parse mdconverter.ReverseConfig) (converter.Config, mdconverter.ReverseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render, parse, fmt.Errorf("read config %s: %w", path, err)
	}

	fc := fileConfig{
		Render: renderFileConfig{Config: render},
		Parse:  parse,
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return render, parse, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Render.BulletMarker != "" {
		marker := []rune(fc.Render.BulletMarker)
		if len(marker) != 1 {
			return render, parse, fmt.Errorf("config %s: bulletMarker must be a single character, got %q", path, fc.Render.BulletMarker)
		}
		fc.Render.Config.BulletMarker = marker[0]
	}

	return fc.Render.Config, fc.Parse, nil
}
