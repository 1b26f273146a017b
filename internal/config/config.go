// Package config builds the questtool configuration.
//
// Precedence, lowest to highest: built-in defaults, config file
// (questtool.yaml / questtool.toml in the working directory or --config),
// environment variables (QUESTTOOL_INDENT, QUESTTOOL_RECORD_DIR, ...),
// command-line flags.
//
// The resulting Config is built once per invocation and passed explicitly to
// every operation. Nothing in questtool reads configuration from package
// state.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys. Flags are bound to the same names.
const (
	KeyAggregate     = "aggregate"
	KeyRecordDir     = "record_dir"
	KeyReadme        = "readme"
	KeyIndent        = "indent"
	KeyCompact       = "compact"
	KeyDebug         = "debug"
	KeyLogFile       = "log_file"
	KeyRequireClean  = "require_clean"
	KeyStrict        = "strict"
	KeyWikiHost      = "wiki.host"
	KeyWikiCategory  = "wiki.category"
	KeyReadmeHeader  = "wiki.readme_header"
	KeyKC3URL        = "compare.kc3_url"
	KeyLimitedURL    = "compare.limited_url"
	KeyHTTPTimeout   = "compare.timeout"
	KeyCachePath     = "cache.path"
	KeyMergePatch    = "merge.patch"
	KeyUpdateReadme  = "merge.update_readme"
	envPrefix        = "QUESTTOOL"
	defaultFileStem  = "questtool"
	defaultCachePath = ".questtool/cache.db"
)

// Defaults.
const (
	DefaultAggregate    = "quest/poi.json"
	DefaultRecordDir    = "quest"
	DefaultReadme       = "quest/README.md"
	DefaultIndent       = 2
	DefaultWikiHost     = "zh.kcwiki.org"
	DefaultWikiCategory = "任务"
	DefaultReadmeHeader = "任务列表"
	DefaultKC3URL       = "https://raw.githubusercontent.com/KC3Kai/kc3-translations/master/data/jp/quests.json"
	DefaultLimitedURL   = "https://zh.kcwiki.org/api.php?action=query&format=json&prop=revisions&rvprop=content&titles=%E4%BB%BB%E5%8A%A1/%E6%9C%9F%E9%97%B4%E9%99%90%E5%AE%9A%E4%BB%BB%E5%8A%A1"
	DefaultHTTPTimeout  = 30 * time.Second
)

// ErrInvalid is returned when the assembled configuration is unusable.
var ErrInvalid = errors.New("invalid configuration")

// Config is the effective configuration of one invocation.
type Config struct {
	// Aggregate is the path of the aggregate collection file.
	Aggregate string `toml:"aggregate" yaml:"aggregate" mapstructure:"aggregate"`
	// RecordDir holds the per-record {game_id}.json files.
	RecordDir string `toml:"record_dir" yaml:"record_dir" mapstructure:"record_dir"`
	// Readme is where the Markdown index is written.
	Readme string `toml:"readme" yaml:"readme" mapstructure:"readme"`

	// Indent is the JSON indent width; 0 means compact output.
	Indent int `toml:"indent" yaml:"indent" mapstructure:"indent"`

	Debug        bool   `toml:"debug" yaml:"debug" mapstructure:"debug"`
	LogFile      string `toml:"log_file,omitempty" yaml:"log_file,omitempty" mapstructure:"log_file"`
	RequireClean bool   `toml:"require_clean" yaml:"require_clean" mapstructure:"require_clean"`
	Strict       bool   `toml:"strict" yaml:"strict" mapstructure:"strict"`

	Merge   MergeConfig   `toml:"merge" yaml:"merge" mapstructure:"merge"`
	Wiki    WikiConfig    `toml:"wiki" yaml:"wiki" mapstructure:"wiki"`
	Compare CompareConfig `toml:"compare" yaml:"compare" mapstructure:"compare"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache" mapstructure:"cache"`
}

// MergeConfig holds merge defaults.
type MergeConfig struct {
	// Patch seeds the merge from the existing aggregate.
	Patch bool `toml:"patch" yaml:"patch" mapstructure:"patch"`
	// UpdateReadme re-renders the index after a merge.
	UpdateReadme bool `toml:"update_readme" yaml:"update_readme" mapstructure:"update_readme"`
}

// WikiConfig controls the rendered index links.
type WikiConfig struct {
	Host         string `toml:"host" yaml:"host" mapstructure:"host"`
	Category     string `toml:"category" yaml:"category" mapstructure:"category"`
	ReadmeHeader string `toml:"readme_header" yaml:"readme_header" mapstructure:"readme_header"`
}

// CompareConfig holds the remote data sources for the compare report.
type CompareConfig struct {
	KC3URL     string        `toml:"kc3_url" yaml:"kc3_url" mapstructure:"kc3_url"`
	LimitedURL string        `toml:"limited_url" yaml:"limited_url" mapstructure:"limited_url"`
	Timeout    time.Duration `toml:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig locates the SQLite query cache.
type CacheConfig struct {
	Path string `toml:"path" yaml:"path" mapstructure:"path"`
}

// New returns a viper instance with questtool defaults and environment
// binding applied. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// SetDefaults registers all default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAggregate, DefaultAggregate)
	v.SetDefault(KeyRecordDir, DefaultRecordDir)
	v.SetDefault(KeyReadme, DefaultReadme)
	v.SetDefault(KeyIndent, DefaultIndent)
	v.SetDefault(KeyCompact, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyRequireClean, false)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyMergePatch, false)
	v.SetDefault(KeyUpdateReadme, true)
	v.SetDefault(KeyWikiHost, DefaultWikiHost)
	v.SetDefault(KeyWikiCategory, DefaultWikiCategory)
	v.SetDefault(KeyReadmeHeader, DefaultReadmeHeader)
	v.SetDefault(KeyKC3URL, DefaultKC3URL)
	v.SetDefault(KeyLimitedURL, DefaultLimitedURL)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyCachePath, defaultCachePath)
}

// ReadFile loads the config file into v. An explicit path must exist; without
// one, questtool.{yaml,toml} is looked up in the working directory and a
// missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(defaultFileStem)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load assembles and validates the Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Aggregate:    v.GetString(KeyAggregate),
		RecordDir:    v.GetString(KeyRecordDir),
		Readme:       v.GetString(KeyReadme),
		Indent:       v.GetInt(KeyIndent),
		Debug:        v.GetBool(KeyDebug),
		LogFile:      v.GetString(KeyLogFile),
		RequireClean: v.GetBool(KeyRequireClean),
		Strict:       v.GetBool(KeyStrict),
		Merge: MergeConfig{
			Patch:        v.GetBool(KeyMergePatch),
			UpdateReadme: v.GetBool(KeyUpdateReadme),
		},
		Wiki: WikiConfig{
			Host:         v.GetString(KeyWikiHost),
			Category:     v.GetString(KeyWikiCategory),
			ReadmeHeader: v.GetString(KeyReadmeHeader),
		},
		Compare: CompareConfig{
			KC3URL:     v.GetString(KeyKC3URL),
			LimitedURL: v.GetString(KeyLimitedURL),
			Timeout:    v.GetDuration(KeyHTTPTimeout),
		},
		Cache: CacheConfig{
			Path: v.GetString(KeyCachePath),
		},
	}

	if v.GetBool(KeyCompact) {
		cfg.Indent = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration with only built-in defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults are invalid: %v", err))
	}
	return cfg
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Aggregate == "" {
		return fmt.Errorf("%w: aggregate path is required", ErrInvalid)
	}
	if c.RecordDir == "" {
		return fmt.Errorf("%w: record_dir is required", ErrInvalid)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("%w: indent must be between 0 and 16 (got %d)", ErrInvalid, c.Indent)
	}
	if c.Compare.Timeout < 0 {
		return fmt.Errorf("%w: compare.timeout must not be negative", ErrInvalid)
	}
	if filepath.Clean(c.Aggregate) == filepath.Clean(c.RecordDir) {
		return fmt.Errorf("%w: aggregate and record_dir must differ", ErrInvalid)
	}
	return nil
}
