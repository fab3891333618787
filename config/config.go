// Package config reads the YAML configuration of the bivariate command:
// how to classify and colour the data, and how to draw the legend.
//
//	renderer:
//	  field1: population
//	  field2: income
//	  classes: 3
//	  method: Quantile
//	  palette: Green - Pink
//	  mixing: Direct Mixing
//	legend:
//	  width: 400
//	  height: 400
//	  addAxesArrows: true
//	  addAxesTexts: true
//	  axisTitleX: Population
//	  axisTitleY: Income
//
// Keys that are left out keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top level of a configuration file.
type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Legend   LegendConfig   `yaml:"legend"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Renderer: DefaultRenderer(),
		Legend:   DefaultLegend(),
	}
}

// Load reads a configuration file. An empty filename returns Default.
func Load(filename string) (Config, error) {
	if filename == "" {
		return Default(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	return c, nil
}

// Parse decodes a configuration from YAML bytes.
func Parse(data []byte) (Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads YAML from r on top of Default. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return c, nil
}

// Encode writes c as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
