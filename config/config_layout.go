package config

import (
	"fmt"
)

type layoutConfig struct {
	PageWidth          *float64 `yaml:"page_width"`
	NarrowColumnWidth  *float64 `yaml:"narrow_column_width"`
	MinAlleyWidth      *float64 `yaml:"min_alley_width"`
	TwoColumnMinHeight *float64 `yaml:"two_column_min_height"`

	LeftHistogramWindow  *float64 `yaml:"left_histogram_window"`
	RightHistogramWindow *float64 `yaml:"right_histogram_window"`
	RightLowPassWindow   *float64 `yaml:"right_low_pass_window"`

	LeftCutoffRatio  *float64 `yaml:"left_cutoff_ratio"`
	RightCutoffRatio *float64 `yaml:"right_cutoff_ratio"`
}

type preprocessConfig struct {
	Enabled         *bool    `yaml:"enabled"`
	PageNumberRange *float64 `yaml:"page_number_range"`
	Normalize       *bool    `yaml:"normalize"`
}

type pdfConfig struct {
	RowGapRatio *float64 `yaml:"row_gap_ratio"`
}

func (c *Config) registerLayout(f *configFile) error {
	l := f.Layout
	p := &c.Params

	setFloat(&p.PageWidth, l.PageWidth)
	setFloat(&p.NarrowColumnWidth, l.NarrowColumnWidth)
	setFloat(&p.MinAlleyWidth, l.MinAlleyWidth)
	setFloat(&p.TwoColumnMinHeight, l.TwoColumnMinHeight)
	setFloat(&p.LeftHistogramWindow, l.LeftHistogramWindow)
	setFloat(&p.RightHistogramWindow, l.RightHistogramWindow)
	setFloat(&p.RightLowPassWindow, l.RightLowPassWindow)
	setFloat(&p.LeftCutoffRatio, l.LeftCutoffRatio)
	setFloat(&p.RightCutoffRatio, l.RightCutoffRatio)

	if err := p.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	return nil
}

// registerPreprocess keeps the rescale width in step with the layout
// page width, since the analysis assumes pages of that width.
func (c *Config) registerPreprocess(f *configFile) {
	pp := f.Preprocess

	c.Preprocess.PageWidth = c.Params.PageWidth

	if pp.Enabled != nil {
		c.SkipPreprocess = !*pp.Enabled
	}

	setFloat(&c.Preprocess.PageNumberRange, pp.PageNumberRange)

	if pp.Normalize != nil {
		c.Preprocess.Normalize = *pp.Normalize
	}
}

func (c *Config) registerSource(f *configFile) {
	setFloat(&c.Source.RowGapRatio, f.PDF.RowGapRatio)
}

func setFloat(dst *float64, val *float64) {
	if val != nil {
		*dst = *val
	}
}
