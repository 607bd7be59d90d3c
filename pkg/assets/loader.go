package assets

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/vango-dev/mwc/internal/errors"
	"github.com/vango-dev/mwc/pkg/element"
)

// Loader returns an element.Loader that succeeds once the definition's
// module (after manifest resolution) exists in src.
func Loader(src Source, m *Manifest) element.Loader {
	logger := slog.Default().With("component", "assets")
	return element.LoaderFunc(func(ctx context.Context, def element.Definition) error {
		name := m.Resolve(def.Module)
		info, err := src.Stat(ctx, name)
		if err != nil {
			if stderrors.Is(err, ErrNotFound) {
				return errors.New("M202").
					WithDetail("module " + name + " for <" + def.Tag + "> is missing").
					Wrap(err)
			}
			return err
		}
		logger.Debug("element module found", "tag", def.Tag, "module", info.Name, "size", info.Size)
		return nil
	})
}
