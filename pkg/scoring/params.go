package scoring

// Params holds the scoring calibration constants. The defaults are the
// canonical values; config may override them but there is no runtime reload.
type Params struct {
	// BM25 term-frequency saturation.
	K1        float64 `yaml:"k1"`
	B         float64 `yaml:"b"`
	AvgDocLen float64 `yaml:"avg_doc_len"`

	// TitleWeight repeats the title when building the scoring blob, so title
	// terms count up to that many times per occurrence.
	TitleWeight int `yaml:"title_weight"`

	// Combination weights. Sentiment enters as an absolute value: a strongly
	// negative article is as salient as a strongly positive one.
	SentimentWeight float64 `yaml:"sentiment_weight"`
	RelevanceWeight float64 `yaml:"relevance_weight"`
	ThemeBoost      float64 `yaml:"theme_boost"`

	// Adaptive alert threshold: mean + multiplier*stddev, capped.
	ThresholdMultiplier float64 `yaml:"threshold_multiplier"`
	ThresholdCap        float64 `yaml:"threshold_cap"`
}

// DefaultParams returns the calibrated constants. AvgDocLen is a fixed news
// calibration value, not derived from the corpus.
func DefaultParams() Params {
	return Params{
		K1:                  1.5,
		B:                   0.75,
		AvgDocLen:           500,
		TitleWeight:         3,
		SentimentWeight:     0.4,
		RelevanceWeight:     0.6,
		ThemeBoost:          5.0,
		ThresholdMultiplier: 1.5,
		ThresholdCap:        95.0,
	}
}

// sane fills zero-valued fields with defaults so a partial config section
// never zeroes out the pipeline.
func (p Params) sane() Params {
	d := DefaultParams()
	if p.K1 == 0 {
		p.K1 = d.K1
	}
	if p.B == 0 {
		p.B = d.B
	}
	if p.AvgDocLen == 0 {
		p.AvgDocLen = d.AvgDocLen
	}
	if p.TitleWeight == 0 {
		p.TitleWeight = d.TitleWeight
	}
	if p.SentimentWeight == 0 {
		p.SentimentWeight = d.SentimentWeight
	}
	if p.RelevanceWeight == 0 {
		p.RelevanceWeight = d.RelevanceWeight
	}
	if p.ThemeBoost == 0 {
		p.ThemeBoost = d.ThemeBoost
	}
	if p.ThresholdMultiplier == 0 {
		p.ThresholdMultiplier = d.ThresholdMultiplier
	}
	if p.ThresholdCap == 0 {
		p.ThresholdCap = d.ThresholdCap
	}
	return p
}
