package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	fgerrors "github.com/matzehuels/flowergraph/pkg/errors"
	"github.com/matzehuels/flowergraph/pkg/flower"
)

// fileConfig is the layout of flowergraph.toml:
//
//	label = "name"
//	types = "tags"
//	viz = "flower"
//	formats = ["svg", "json"]
//
//	[graph]
//	width = 800
//	hue = "blue"
//
//	[graph.roots]
//	hide_labels = true
type fileConfig struct {
	Label   string        `toml:"label"`
	Types   string        `toml:"types"`
	Viz     string        `toml:"viz"`
	Style   string        `toml:"style"`
	Formats []string      `toml:"formats"`
	Graph   flower.Config `toml:"graph"`
	Serve   serveConfig   `toml:"serve"`
}

type serveConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the config file at path. An empty path reads
// ./flowergraph.toml when it exists and yields an empty config otherwise.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	explicit := path != ""
	if !explicit {
		path = configFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fgerrors.New(fgerrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, fgerrors.Wrap(fgerrors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fgerrors.Wrap(fgerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fgerrors.New(fgerrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
