package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Compound   CompoundConfig   `yaml:"compound"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Ngram      NgramConfig      `yaml:"ngram"`
	Query      QueryConfig      `yaml:"query"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// ApplicationName is reported to Postgres (pg_stat_activity).
	ApplicationName string `yaml:"application_name" env:"DATABASE_APPLICATION_NAME" env-default:"lexarch"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CorpusConfig points at the input datasets of the lexicon build.
// Empty table paths select the embedded reference tables.
type CorpusConfig struct {
	CMUDictPath      string `yaml:"cmudict_path"       env:"CORPUS_CMUDICT_PATH"       env-default:"./data/cmudict-0.7b.txt"`
	AcronymsPath     string `yaml:"acronyms_path"      env:"CORPUS_ACRONYMS_PATH"`
	FrequencyPath    string `yaml:"frequency_path"     env:"CORPUS_FREQUENCY_PATH"     env-default:"./data/unigram_freq.csv"`
	PhonemeTablePath string `yaml:"phoneme_table_path" env:"CORPUS_PHONEME_TABLE_PATH"`
	GraphemePath     string `yaml:"grapheme_path"      env:"CORPUS_GRAPHEME_PATH"`
}

// CompoundConfig gates closed compound detection.
type CompoundConfig struct {
	MinPartLen int   `yaml:"min_part_len" env:"COMPOUND_MIN_PART_LEN" env-default:"3"`
	Floor      int64 `yaml:"floor"        env:"COMPOUND_FLOOR"        env-default:"1000000"`
	Ceiling    int64 `yaml:"ceiling"      env:"COMPOUND_CEILING"      env-default:"15000000"`
}

// DifficultyConfig holds the difficulty model weights and constants.
type DifficultyConfig struct {
	WeightMatch           float64 `yaml:"weight_match"            env:"DIFFICULTY_WEIGHT_MATCH"            env-default:"0.35"`
	WeightAmbiguity       float64 `yaml:"weight_ambiguity"        env:"DIFFICULTY_WEIGHT_AMBIGUITY"        env-default:"0.25"`
	WeightComplexity      float64 `yaml:"weight_complexity"       env:"DIFFICULTY_WEIGHT_COMPLEXITY"       env-default:"0.20"`
	WeightLength          float64 `yaml:"weight_length"           env:"DIFFICULTY_WEIGHT_LENGTH"           env-default:"0.20"`
	SmoothingK            float64 `yaml:"smoothing_k"             env:"DIFFICULTY_SMOOTHING_K"             env-default:"5"`
	MaxLogFrequency       float64 `yaml:"max_log_frequency"       env:"DIFFICULTY_MAX_LOG_FREQUENCY"       env-default:"7"`
	MaxSyllables          float64 `yaml:"max_syllables"           env:"DIFFICULTY_MAX_SYLLABLES"           env-default:"6"`
	Discount              float64 `yaml:"discount"                env:"DIFFICULTY_DISCOUNT"                env-default:"0.4"`
	SpellingDiscountRatio float64 `yaml:"spelling_discount_ratio" env:"DIFFICULTY_SPELLING_DISCOUNT_RATIO" env-default:"0.7"`
	UnseenEntropy         float64 `yaml:"unseen_entropy"          env:"DIFFICULTY_UNSEEN_ENTROPY"          env-default:"1.5"`
	EntropyScale          float64 `yaml:"entropy_scale"           env:"DIFFICULTY_ENTROPY_SCALE"           env-default:"3"`
}

// NgramConfig holds the historical usage provider settings.
type NgramConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"NGRAM_ENABLED"    env-default:"true"`
	BaseURL   string        `yaml:"base_url"   env:"NGRAM_BASE_URL"   env-default:"https://books.google.com/ngrams/json"`
	Corpus    int           `yaml:"corpus"     env:"NGRAM_CORPUS"     env-default:"26"`
	Smoothing int           `yaml:"smoothing"  env:"NGRAM_SMOOTHING"  env-default:"3"`
	YearStart int           `yaml:"year_start" env:"NGRAM_YEAR_START" env-default:"1800"`
	YearEnd   int           `yaml:"year_end"   env:"NGRAM_YEAR_END"   env-default:"2019"`
	Timeout   time.Duration `yaml:"timeout"    env:"NGRAM_TIMEOUT"    env-default:"10s"`
}

// QueryConfig holds query service settings.
type QueryConfig struct {
	SimilarLimit    int `yaml:"similar_limit"    env:"QUERY_SIMILAR_LIMIT"    env-default:"10"`
	SuggestionLimit int `yaml:"suggestion_limit" env:"QUERY_SUGGESTION_LIMIT" env-default:"5"`
	CacheSize       int `yaml:"cache_size"       env:"QUERY_CACHE_SIZE"       env-default:"4096"`
	RateLimit       int `yaml:"rate_limit"       env:"QUERY_RATE_LIMIT"       env-default:"600"` // requests per minute per client, 0 disables
}
