// Package config loads the small set of tunables the core leaves
// implementation-defined. Grounded on the
// teacher pack's fallback-priority config loading
// (bastiangx-wordserve's LoadConfigWithPriority), rebuilt here on
// github.com/BurntSushi/toml since that is the TOML library the pack
// actually carries for this purpose.
package config

import "github.com/BurntSushi/toml"

// Config holds every tunable the converter core reads at call time.
type Config struct {
	// HistoryKeyByteLimit is the maximum concatenated byte length of
	// history segment keys before history is dropped entirely (400
	// hiragana characters, i.e. 1200 bytes, must trip it). Design
	// target <= 500 bytes; default chosen at 400.
	HistoryKeyByteLimit int `toml:"history_key_byte_limit"`

	// NBestExpansionBudgetMultiplier bounds the backward A* pop count
	// as a multiple of the requested candidate count.
	NBestExpansionBudgetMultiplier int `toml:"nbest_expansion_budget_multiplier"`

	// NBestExpansionBudgetMax is the hard ceiling on pops regardless
	// of the multiplier ("a few tens of thousands").
	NBestExpansionBudgetMax int `toml:"nbest_expansion_budget_max"`

	// DefaultConversionCandidates is N for CONVERSION-mode N-best when
	// the caller does not specify a cap.
	DefaultConversionCandidates int `toml:"default_conversion_candidates"`

	// MinDummyCandidates is the floor InsertDummyCandidates guarantees
	// for a segment that already has a candidate, capped at the
	// requested desired size when that is smaller.
	MinDummyCandidates int `toml:"min_dummy_candidates"`
}

// Default returns the built-in tunable values used when no config
// file is present.
func Default() Config {
	return Config{
		HistoryKeyByteLimit:            400,
		NBestExpansionBudgetMultiplier: 10,
		NBestExpansionBudgetMax:        50000,
		DefaultConversionCandidates:    20,
		MinDummyCandidates:             3,
	}
}

// Load overlays a TOML file at path onto Default, following the
// pack's fallback-on-missing-field shape: fields absent from the file
// keep their default value rather than zeroing out.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
