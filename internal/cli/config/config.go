// Package config loads and validates CLI configuration from defaults,
// config file, environment, and flags, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/starthal/identify/pkg/classify"
	"github.com/starthal/identify/pkg/classify/catalog"
	"github.com/starthal/identify/pkg/classify/shebang"
)

const (
	EnvPrefix         = "IDENTIFY"
	DefaultConfigName = "identify"
)

// LoadAndValidate merges configuration from all sources, validates the
// result, sets up the logger, and loads any catalog override file.
// Returns the populated Options struct, the logger, or an error.
func LoadAndValidate(cfgFile, appVersion string, verbose bool, flags *pflag.FlagSet) (classify.Options, *slog.Logger, error) {
	var opts classify.Options
	v := viper.New()

	// Basic logger for errors raised before the final logger exists.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			tempLogger.Error("Failed to get user home directory", slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("failed to get user home directory: %w", err)
		}
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		v.AddConfigPath(filepath.Join(home, "."+DefaultConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			tempLogger.Debug("No configuration file found, using defaults/env/flags")
		} else {
			used := cfgFile
			if used == "" {
				used = fmt.Sprintf("searched locations for %s.yaml", DefaultConfigName)
			}
			tempLogger.Error("Error reading configuration file", slog.String("path", used), slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("error reading config file '%s': %w", used, err)
		}
	} else {
		opts.ConfigFilePath = v.ConfigFileUsed()
		tempLogger.Debug("Using configuration file", slog.String("path", opts.ConfigFilePath))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Flags take highest precedence. Kebab-case flag names map onto the
	// camelCase viper keys the Options mapstructure tags use.
	flagBindings := map[string]string{
		"verbose":             "verbose",
		"ignore":              "ignore",
		"onError":             "onError",
		"concurrency":         "concurrency",
		"git-tracked-only":    "gitTrackedOnly",
		"detect-languages":    "detectLanguages",
		"catalog-override":    "catalogOverride",
		"output-format":       "outputFormat",
		"max-nix-shell-lines": "maxNixShellLines",
	}
	for flagName, key := range flagBindings {
		if flag := flags.Lookup(flagName); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				tempLogger.Error("Error binding flag", slog.String("flag", flagName), slog.Any("error", err))
				return opts, tempLogger, fmt.Errorf("error binding flag '--%s': %w", flagName, err)
			}
		}
	}

	// Accept the kebab-case spellings in config files too.
	v.RegisterAlias("git-tracked-only", "gitTrackedOnly")
	v.RegisterAlias("detect-languages", "detectLanguages")
	v.RegisterAlias("catalog-override", "catalogOverride")
	v.RegisterAlias("output-format", "outputFormat")
	v.RegisterAlias("max-nix-shell-lines", "maxNixShellLines")

	opts.AppVersion = appVersion
	if err := v.Unmarshal(&opts); err != nil {
		tempLogger.Error("Error unmarshalling configuration", slog.Any("error", err))
		return opts, tempLogger, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Boolean flags always win when explicitly set.
	if flags.Changed("verbose") {
		opts.Verbose, _ = flags.GetBool("verbose")
	} else if verbose {
		opts.Verbose = true
	}
	if flags.Changed("git-tracked-only") {
		opts.GitTrackedOnly, _ = flags.GetBool("git-tracked-only")
	}
	if flags.Changed("detect-languages") {
		opts.DetectLanguages, _ = flags.GetBool("detect-languages")
	}
	if flags.Changed("no-tui") {
		if noTui, _ := flags.GetBool("no-tui"); noTui {
			opts.TuiEnabled = false
		}
	}

	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logHandler)
	opts.Logger = logHandler

	if err := validateAndDeriveOptions(&opts, logger, flags); err != nil {
		return opts, logger, err
	}

	logger.Debug("Configuration loading and validation complete",
		slog.String("configFile", opts.ConfigFilePath),
		slog.Bool("verbose", opts.Verbose),
		slog.String("logLevel", logLevel.String()),
	)
	return opts, logger, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", classify.DefaultVerbose)
	v.SetDefault("tuiEnabled", classify.DefaultTuiEnabled)
	v.SetDefault("onError", string(classify.DefaultOnErrorMode))
	v.SetDefault("concurrency", classify.DefaultConcurrency)
	v.SetDefault("ignore", []string{})
	v.SetDefault("gitTrackedOnly", false)
	v.SetDefault("detectLanguages", false)
	v.SetDefault("catalogOverride", "")
	v.SetDefault("outputFormat", string(classify.DefaultOutputFormat))
	v.SetDefault("maxNixShellLines", shebang.DefaultMaxNixShellLines)
}

func isValidEnumValue[T ~string](value T, allowed []T) bool {
	return slices.Contains(allowed, value)
}

// validateAndDeriveOptions performs semantic validation on the merged
// Options, loads the catalog override if configured, and resolves the
// effective TUI setting. Errors wrap classify.ErrConfigValidation.
func validateAndDeriveOptions(opts *classify.Options, logger *slog.Logger, flags *pflag.FlagSet) error {
	allowedOnError := []classify.OnErrorMode{classify.OnErrorContinue, classify.OnErrorStop}
	if !isValidEnumValue(opts.OnErrorMode, allowedOnError) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'onError' (flag --onError). Allowed: %v", classify.ErrConfigValidation, opts.OnErrorMode, allowedOnError)
		logger.Error(err.Error(), slog.String("key", "onError"))
		return err
	}
	allowedOutputFormat := []classify.OutputFormat{classify.OutputFormatText, classify.OutputFormatJSON}
	if !isValidEnumValue(opts.OutputFormat, allowedOutputFormat) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'outputFormat' (flag --output-format). Allowed: %v", classify.ErrConfigValidation, opts.OutputFormat, allowedOutputFormat)
		logger.Error(err.Error(), slog.String("key", "outputFormat"))
		return err
	}
	if opts.Concurrency < 0 {
		err := fmt.Errorf("%w: invalid value '%d' for key 'concurrency' (flag --concurrency). Must be >= 0", classify.ErrConfigValidation, opts.Concurrency)
		logger.Error(err.Error(), slog.String("key", "concurrency"))
		return err
	}
	if opts.MaxNixShellLines < 0 {
		err := fmt.Errorf("%w: invalid value '%d' for key 'maxNixShellLines'. Must be >= 0", classify.ErrConfigValidation, opts.MaxNixShellLines)
		logger.Error(err.Error(), slog.String("key", "maxNixShellLines"))
		return err
	}

	if opts.CatalogOverridePath != "" {
		absPath, err := filepath.Abs(opts.CatalogOverridePath)
		if err != nil {
			err = fmt.Errorf("%w: cannot resolve catalog override path '%s': %w", classify.ErrConfigValidation, opts.CatalogOverridePath, err)
			logger.Error(err.Error(), slog.String("key", "catalogOverride"))
			return err
		}
		opts.CatalogOverridePath = absPath

		override, err := catalog.LoadFile(absPath)
		if err != nil {
			err = fmt.Errorf("%w: loading catalog override '%s': %w", classify.ErrConfigValidation, absPath, err)
			logger.Error(err.Error(), slog.String("key", "catalogOverride"))
			return err
		}
		opts.Catalog = catalog.Default().Merge(override)
		logger.Debug("Catalog override applied", slog.String("path", absPath))
	}

	// Verbose logging and the TUI fight over the terminal; verbose wins.
	if opts.Verbose && opts.TuiEnabled {
		logger.Debug("Verbose mode enabled, TUI disabled")
		opts.TuiEnabled = false
	}
	// A JSON report on stdout with a TUI on top makes no sense either.
	if opts.OutputFormat == classify.OutputFormatJSON && opts.TuiEnabled && !flags.Changed("no-tui") {
		logger.Debug("JSON output requested, TUI disabled")
		opts.TuiEnabled = false
	}
	return nil
}
