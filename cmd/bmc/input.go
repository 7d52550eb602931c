package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	formatAuto       = "auto"
	formatJSON       = "json"
	formatSerialized = "serialized"
)

// readInput reads path, or stdin for "-", as UTF-8. A UTF-8 or UTF-16 byte
// order mark selects the decoding and is dropped.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var r io.Reader
	name := path
	if path == "" || path == "-" {
		r = stdin
		name = "stdin"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// blockInputFormat picks the block input format. In auto mode a .json
// extension means JSON; stdin is sniffed for a leading '['.
func blockInputFormat(requested, path string, data []byte) string {
	if requested != "" && requested != formatAuto {
		return requested
	}
	if path == "" || path == "-" {
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			return formatJSON
		}
		return formatSerialized
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatJSON
	}
	return formatSerialized
}
