package streams

import (
	"go.uber.org/fx"
)

// Module provides the streams gateway client for fx DI
var Module = fx.Module("streams",
	fx.Provide(NewClient),
)
