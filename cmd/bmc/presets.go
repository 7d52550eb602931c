package main

import (
	"fmt"
	"strings"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/mdconverter"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetLossy    = "lossy"
)

func presetConfig(preset string) (converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return converter.Config{}, nil
	case presetStrict:
		return converter.Config{
			UnknownBlocks:  converter.UnknownError,
			ResolutionMode: converter.ResolutionStrict,
		}, nil
	case presetLossy:
		return converter.Config{
			UnknownBlocks: converter.UnknownSkip,
		}, nil
	default:
		return converter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, lossy)", preset)
	}
}

func reversePresetConfig(preset string) (mdconverter.ReverseConfig, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return mdconverter.ReverseConfig{}, nil
	case presetStrict:
		return mdconverter.ReverseConfig{
			UnclosedFence: mdconverter.UnclosedFenceParagraph,
		}, nil
	case presetLossy:
		return mdconverter.ReverseConfig{
			UnclosedFence: mdconverter.UnclosedFenceDrop,
		}, nil
	default:
		return mdconverter.ReverseConfig{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, lossy)", preset)
	}
}

// resolveConfig layers the preset, the optional config file and the
// namespace flag, in that order.
func resolveConfig(preset, configPath, namespace string) (converter.Config, mdconverter.ReverseConfig, error) {
	render, err := presetConfig(preset)
	if err != nil {
		return converter.Config{}, mdconverter.ReverseConfig{}, err
	}
	parse, err := reversePresetConfig(preset)
	if err != nil {
		return converter.Config{}, mdconverter.ReverseConfig{}, err
	}

	if configPath != "" {
		render, parse, err = loadConfigFile(configPath, render, parse)
		if err != nil {
			return converter.Config{}, mdconverter.ReverseConfig{}, err
		}
	}

	if ns := strings.TrimSpace(namespace); ns != "" {
		render.Namespace = ns
		parse.Namespace = ns
	}

	return render, parse, nil
}
