// Package randolog is a thin, domain-specific wrapper around
// *zap.Logger: a handful of named events (retry, sphere advance,
// validation failure, run start) instead of ad-hoc Info/Error calls
// scattered through pkg/rando. NopLogger returns a safe zero value so
// the core pipeline never forces a logging dependency on a caller who
// doesn't want one.
package randolog
