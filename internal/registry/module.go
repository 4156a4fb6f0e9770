package registry

import "go.uber.org/fx"

// Module provides the registry snapshot cache.
var Module = fx.Provide(NewCache)
