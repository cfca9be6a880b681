package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/preprocess"
	"github.com/tsawler/pagelayout/source"
)

type Config struct {
	Address string
	Workers int

	Limiter     *rate.Limiter
	CORSOrigins []string

	Params layout.Params

	Preprocess     preprocess.Options
	SkipPreprocess bool

	Source source.Options
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Address: ":8080",

		CORSOrigins: []string{"*"},

		Params:     layout.DefaultParams(),
		Preprocess: preprocess.DefaultOptions(),
		Source:     source.DefaultOptions(),
	}
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := Default()

	if file.Address != "" {
		c.Address = file.Address
	}

	if file.Workers != nil {
		c.Workers = *file.Workers
	}

	if file.CORS.Origins != nil {
		c.CORSOrigins = file.CORS.Origins
	}

	c.Limiter = createLimiter(file.Limits)

	if err := c.registerLayout(file); err != nil {
		return nil, err
	}

	c.registerPreprocess(file)
	c.registerSource(file)

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`
	Workers *int   `yaml:"workers"`

	Limits *limitsConfig `yaml:"limits"`
	CORS   corsConfig    `yaml:"cors"`

	Layout     layoutConfig     `yaml:"layout"`
	Preprocess preprocessConfig `yaml:"preprocess"`
	PDF        pdfConfig        `yaml:"pdf"`
}

type limitsConfig struct {
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

type corsConfig struct {
	Origins []string `yaml:"origins"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &config, nil
}

func createLimiter(limits *limitsConfig) *rate.Limiter {
	if limits == nil || limits.Rate <= 0 {
		return nil
	}

	burst := limits.Burst

	if burst <= 0 {
		burst = int(limits.Rate)
	}

	if burst < 1 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(limits.Rate), burst)
}
