package objectstore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
)

// Module exposes the attachment object store to the fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.CloudinaryURL == "" {
		p.Logger.Warn("object storage disabled, attachment uploads will fail")
		return Disabled{}, nil
	}
	return NewCloudinaryStore(p.Config.CloudinaryURL, p.Config.UploadFolder, p.Logger)
}
