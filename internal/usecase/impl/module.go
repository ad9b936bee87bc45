package impl

import "go.uber.org/fx"

// Module provides every use case implementation.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewLocationService,
		NewEventService,
		NewMemberService,
		NewImportService,
	),
)
