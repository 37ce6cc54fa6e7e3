// Package config resolves a config.BackendConfig from, in priority
// order: an explicit override, the FASTBUILD_COORDINATOR and
// FASTBUILD_BROKERAGE_PATH environment variables, an optional YAML defaults
// file, and finally "disabled" (spec.md §3, §6; SPEC_FULL.md §10.2).
//
// BackendConfig is modeled as a sum type with exactly three cases
// (filesystem, coordinator, none) behind a private discriminant field, so
// that "exactly one backend is active" is a property of the type rather
// than something every caller has to check at runtime (spec.md §9).
package config
