// Package config loads the option table (N, t, q_bits, σ,
// require_ntt_friendly, backend, rng_seed) from YAML into the types
// core/rlwe and schemes/bfv construction actually takes.
package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/schemes/bfv"
)

// File is the on-disk shape of an engine configuration file.
type File struct {
	LogN               int     `yaml:"logN"`
	PlaintextModulus   uint64  `yaml:"t"`
	QBits              int     `yaml:"qBits"`
	Sigma              float64 `yaml:"sigma"`
	RequireNTTFriendly bool    `yaml:"requireNTTFriendly"`
	Backend            string  `yaml:"backend"`
	// RNGSeedHex, if set, is hex-decoded into the rng_seed bytes that
	// make every sampler deterministic.
	RNGSeedHex string `yaml:"rngSeedHex"`
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &f, nil
}

// Literal converts f into the core/rlwe parameter-selector input.
func (f *File) Literal() rlwe.ParametersLiteral {
	return rlwe.ParametersLiteral{
		LogN:               f.LogN,
		PlaintextModulus:   f.PlaintextModulus,
		QBits:              f.QBits,
		Sigma:              f.Sigma,
		RequireNTTFriendly: f.RequireNTTFriendly,
	}
}

// Seed hex-decodes RNGSeedHex, returning (nil, nil) if it is unset.
func (f *File) Seed() ([]byte, error) {
	if f.RNGSeedHex == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(f.RNGSeedHex)
	if err != nil {
		return nil, fmt.Errorf("config.File.Seed: %w", err)
	}
	return seed, nil
}

// EngineOptions builds the bfv.Option slice this file's backend and
// rng_seed settings describe.
func (f *File) EngineOptions() ([]bfv.Option, error) {
	var opts []bfv.Option
	if f.Backend != "" {
		opts = append(opts, bfv.WithBackend(f.Backend))
	}
	seed, err := f.Seed()
	if err != nil {
		return nil, err
	}
	if seed != nil {
		opts = append(opts, bfv.WithRNGSeed(seed))
	}
	return opts, nil
}

// NewEngine builds Parameters and an Engine directly from the
// configuration file's contents, the one-call path config.Load feeds
// into for simple callers.
func (f *File) NewEngine() (*bfv.Engine, error) {
	params, err := rlwe.NewParametersFromLiteral(f.Literal())
	if err != nil {
		return nil, fmt.Errorf("config.File.NewEngine: %w", err)
	}
	opts, err := f.EngineOptions()
	if err != nil {
		return nil, fmt.Errorf("config.File.NewEngine: %w", err)
	}
	return bfv.NewEngine(params, opts...)
}
