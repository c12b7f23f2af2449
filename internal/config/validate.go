package config

import (
	"fmt"
	"math"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if err := c.Compound.validate(); err != nil {
		return fmt.Errorf("compound: %w", err)
	}
	if err := c.Difficulty.validate(); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	if err := c.Ngram.validate(); err != nil {
		return fmt.Errorf("ngram: %w", err)
	}
	if c.Query.RateLimit < 0 {
		return fmt.Errorf("query.rate_limit must be >= 0 (got %d)", c.Query.RateLimit)
	}
	if c.Query.CacheSize <= 0 {
		return fmt.Errorf("query.cache_size must be > 0 (got %d)", c.Query.CacheSize)
	}
	return nil
}

func (c *CompoundConfig) validate() error {
	if c.MinPartLen < 1 {
		return fmt.Errorf("min_part_len must be >= 1 (got %d)", c.MinPartLen)
	}
	if c.Floor < 0 || c.Floor > c.Ceiling {
		return fmt.Errorf("floor must be in 0..ceiling (got %d, ceiling %d)", c.Floor, c.Ceiling)
	}
	return nil
}

func (d *DifficultyConfig) validate() error {
	sum := d.WeightMatch + d.WeightAmbiguity + d.WeightComplexity + d.WeightLength
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1 (got %v)", sum)
	}
	if d.SmoothingK <= 0 {
		return fmt.Errorf("smoothing_k must be > 0 (got %v)", d.SmoothingK)
	}
	if d.MaxLogFrequency <= 0 {
		return fmt.Errorf("max_log_frequency must be > 0 (got %v)", d.MaxLogFrequency)
	}
	if d.MaxSyllables <= 1 {
		return fmt.Errorf("max_syllables must be > 1 (got %v)", d.MaxSyllables)
	}
	if d.Discount < 0 || d.Discount >= 1 {
		return fmt.Errorf("discount must be in [0,1) (got %v)", d.Discount)
	}
	if d.SpellingDiscountRatio < 0 || d.SpellingDiscountRatio > 1 {
		return fmt.Errorf("spelling_discount_ratio must be in [0,1] (got %v)", d.SpellingDiscountRatio)
	}
	if d.EntropyScale <= 0 {
		return fmt.Errorf("entropy_scale must be > 0 (got %v)", d.EntropyScale)
	}
	return nil
}

func (n *NgramConfig) validate() error {
	if n.YearStart > n.YearEnd {
		return fmt.Errorf("year_start must not be after year_end (got %d > %d)", n.YearStart, n.YearEnd)
	}
	if n.Enabled && n.BaseURL == "" {
		return fmt.Errorf("base_url is required when enabled")
	}
	return nil
}
