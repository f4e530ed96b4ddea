// Package config resolves the command-line, environment and config-file
// settings into one validated Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "LLMCONTEXT"
	DefaultOutputFile = "llmcontext.txt"
	// StdoutName as the output file writes to standard output.
	StdoutName = "-"
)

// Version is reported by --version.
var Version = "1.0.0"

// Config holds all application configuration settings
type Config struct {
	// Targets are the directories to scan, in output order.
	Targets []string `mapstructure:"targets" validate:"min=1,dive,required"`

	// Logging settings
	Verbose     bool   `mapstructure:"verbose"`
	Quiet       bool   `mapstructure:"quiet"`
	LogLevel    string `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn warning error none off"`
	LogFormat   string `mapstructure:"log-format" validate:"oneof=text json"`
	NoColor     bool   `mapstructure:"no-color"`
	UseColors   bool   `mapstructure:"-"`
	ShowSkipped bool   `mapstructure:"show-skipped"`

	// Output settings
	OutputFile string `mapstructure:"output" validate:"required"`
	Format     string `mapstructure:"format" validate:"oneof=text markdown json"`

	// Processing settings
	Concurrent    bool          `mapstructure:"concurrent"`
	MaxWorkers    int           `mapstructure:"workers" validate:"min=1,max=1024"`
	MaxFileSizeMB int64         `mapstructure:"max-size" validate:"min=0"`
	ShowProgress  bool          `mapstructure:"progress"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"min=0"`

	// Filtering settings
	IgnoreHidden bool     `mapstructure:"hidden"`
	IgnoreGit    bool     `mapstructure:"git"`
	CustomIgnore []string `mapstructure:"ignore"`
	Extensions   []string `mapstructure:"ext" validate:"dive,required"`
	RuleFiles    []string `mapstructure:"rule-file" validate:"min=1,dive,required,excludesall=/"`
	ProjectRoot  bool     `mapstructure:"project-root"`

	ConfigFile string `mapstructure:"config"`
}

// WritesToStdout reports whether output goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.OutputFile == StdoutName
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report problems by flag name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// BindFlags defines every flag on fs with its default.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", DefaultOutputFile, "The file to write the aggregated content to ('-' for stdout)")
	fs.BoolP("verbose", "v", false, "Enable verbose logging (debug level)")
	fs.BoolP("quiet", "q", false, "Suppress INFO messages (only show WARN, ERROR)")
	fs.String("log-level", "", "Set the logging level (debug, info, warn, error, none); overrides --verbose/--quiet")
	fs.String("log-format", "text", "Log line format (text, json)")
	fs.String("format", "text", "Output format (text, markdown, json)")
	fs.Bool("concurrent", false, "Read files concurrently (output order is unchanged)")
	fs.Int("workers", runtime.NumCPU(), "Max number of concurrent workers")
	fs.Int64("max-size", 0, "Max file size to include in MB (0 = no limit)")
	fs.Bool("hidden", false, "Ignore hidden files/directories (starting with '.')")
	fs.Bool("git", true, "Ignore .git directories")
	fs.StringSlice("ignore", nil, "Extra ignore patterns in gitignore syntax (repeatable, comma-separated)")
	fs.StringSlice("ext", nil, "Only include files with these extensions (e.g. 'go,md,txt')")
	fs.StringSlice("rule-file", []string{".gitignore", ".llmignore"}, "Rule-file names read in every directory; later names take precedence")
	fs.Bool("project-root", false, "Load ignore rules from the enclosing git repository root downwards")
	fs.Bool("no-color", false, "Disable color output")
	fs.Bool("progress", false, "Show progress information")
	fs.Duration("timeout", 0, "Maximum execution time (e.g. '30s', '5m')")
	fs.Bool("show-skipped", false, "Show a list of skipped files/directories and reasons at the end")
	fs.StringP("config", "c", "", "Config file (YAML, TOML or JSON)")
}

// Load merges flags, LLMCONTEXT_* environment variables and the optional
// config file, in that order of precedence, and validates the result. args
// are the positional target directories.
func Load(v *viper.Viper, fs *pflag.FlagSet, args []string) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", cfgFile, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	c.Targets = args
	if len(c.Targets) == 0 {
		c.Targets = []string{"."}
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.CustomIgnore = cleanList(c.CustomIgnore, false)
	c.Extensions = cleanList(c.Extensions, true)
	c.RuleFiles = cleanList(c.RuleFiles, false)

	if err := Validate(c); err != nil {
		return nil, err
	}

	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
	return c, nil
}

// Validate checks c and reports every invalid setting by flag name.
func Validate(c *Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("invalid --%s (%v): must satisfy %s", flagName(fe.Namespace()), fe.Value(), describeTag(fe)))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

// flagName turns "Config.rule-file[0]" into "rule-file".
func flagName(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexByte(namespace, '['); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// cleanList trims entries, drops empty ones and optionally strips a leading
// dot and lower-cases them (for extensions).
func cleanList(in []string, extension bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if extension {
			s = strings.ToLower(strings.TrimPrefix(s, "."))
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
