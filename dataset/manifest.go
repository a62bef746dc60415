package dataset

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest records the parameters of one generation run, written once
// alongside the run's output partitions so a later consumer can tell how a
// corpus was produced without re-deriving it from CLI history.
type Manifest struct {
	BiddingSamples  int    `yaml:"bidding_samples"`
	GameplaySamples int    `yaml:"gameplay_samples"`
	PIMCN           int    `yaml:"pimc_n"`
	TTLog2          int    `yaml:"tt_log2"`
	Workers         int    `yaml:"workers"`
	Seed            uint64 `yaml:"seed"`
	BiasModeMix     string `yaml:"bias_mode_mix"`
}

// WriteManifest encodes m as YAML to w.
func WriteManifest(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(m)
}

// ReadManifest decodes a Manifest previously written by WriteManifest.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	err := dec.Decode(&m)
	return m, err
}
