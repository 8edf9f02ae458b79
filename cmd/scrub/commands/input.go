package commands

import (
	"context"
	"io"

	"github.com/spf13/viper"

	"github.com/jmylchreest/scrub/internal/source"
)

// loadInput reads one source argument: a file, an http(s) URL, or "-".
func loadInput(ctx context.Context, v *viper.Viper, stdin io.Reader, arg string) (source.Input, error) {
	loader := source.NewLoader(sourceOptions(v), stdin)
	defer func() { _ = loader.Close() }()
	return loader.Load(ctx, arg)
}
