// Package config loads a YAML-described randomizer Scenario: the terms,
// logic gates, and per-stage groups of items/locations a worked example
// or the randocore CLI hands to pkg/rando. The shape is the usual one
// for this kind of declarative config package — LoadConfig/
// LoadConfigFromBytes, Validate, Hash, generateSeed — applied here to
// randomizer scenario declarations.
package config
