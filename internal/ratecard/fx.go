package ratecard

import (
	"go.uber.org/fx"

	"github.com/irvrobbi/promusic/internal/ratecard/repository"
)

var Module = fx.Module("ratecard",
	fx.Provide(repository.NewRepository),
)
