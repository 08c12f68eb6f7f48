package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/qri-io/semequal"
)

type MainConfig struct {
	YAML    bool `cli:"name=y aliases=yaml desc='decode inputs as yaml'"`
	Color   bool `cli:"name=color desc='color the report'"`
	Diff    bool `cli:"name=diff desc='show a line diff of the documents instead of the full report'"`
	JSON    bool `cli:"name=json desc='print the difference as json'"`
	Stats   bool `cli:"name=stats desc='print comparison stats'"`
	Verbose bool `cli:"name=v desc='log debug messages'"`

	Exclude []string

	Main *cli.Command
}

func (cfg *MainConfig) excludeOpt(_ *cli.Context, v string) (any, error) {
	if _, err := semequal.ParsePath(v); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Exclude = append(cfg.Exclude, v)
	return v, nil
}

func (cfg *MainConfig) parse(data []byte) (*semequal.Node, error) {
	if cfg.YAML {
		return semequal.ParseYAML(data)
	}
	return semequal.ParseJSON(data)
}

// colorOut reports whether output to w should be colored. An explicit -color
// wins, otherwise color is on for terminals
func (cfg *MainConfig) colorOut(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
