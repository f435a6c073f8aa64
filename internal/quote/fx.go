package quote

import (
	"go.uber.org/fx"

	"github.com/irvrobbi/promusic/internal/quote/service"
)

var Module = fx.Module("quote",
	fx.Provide(service.NewService),
)
