package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "loctool"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	formatFlagName  = "format"
	excludeFlagName = "exclude"
	logFileFlagName = "log-file"
	verboseFlagName = "verbose"

	extFlagName         = "ext"
	lowFlagName         = "low"
	highFlagName        = "high"
	policyFlagName      = "policy"
	dirContainsFlagName = "dir-contains"
	fileFlagName        = "file"
	markerFlagName      = "marker"
	guardFlagName       = "guard"
	targetFlagName      = "target"
	replacementFlagName = "replacement"
	dryRunFlagName      = "dry-run"

	formatConfigKey  = "format"
	excludeConfigKey = "paths.exclude"

	scanRootKey       = "scan.root"
	scanExtensionsKey = "scan.extensions"
	scanLowKey        = "scan.low"
	scanHighKey       = "scan.high"
	scanPolicyKey     = "scan.policy"

	replaceRootKey        = "replace.root"
	replaceDirContainsKey = "replace.dir_contains"
	replaceFilesKey       = "replace.files"
	replaceMarkerKey      = "replace.marker"
	replaceGuardKey       = "replace.guard"
	replaceTargetKey      = "replace.target"
	replaceReplacementKey = "replace.replacement"

	defaultFormat = "text"

	defaultScanRoot   = "app/en"
	defaultScanLow    = "0x4e00"
	defaultScanHigh   = "0x9fff"
	defaultScanPolicy = "file"

	defaultReplaceRoot        = "app"
	defaultReplaceDirContains = "settings"
	defaultReplaceMarker      = "const languages = ["
	defaultReplaceGuard       = "{ code: 'jp'"
	defaultReplaceTarget      = "{ code: 'de', name: '德語', nativeName: 'Deutsch' },"
	defaultReplaceReplacement = defaultReplaceTarget +
		"\n    { code: 'jp', name: '日語', nativeName: '日本語' }," +
		"\n    { code: 'es', name: '西班牙語', nativeName: 'Español' },"

	envPrefix = "LOCTOOL"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".loctool.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	defaultScanExtensions = []string{".ts", ".tsx"}
	defaultReplaceFiles   = []string{"page.tsx"}
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(formatConfigKey, defaultFormat)
	viper.SetDefault(excludeConfigKey, []string{})

	viper.SetDefault(scanRootKey, defaultScanRoot)
	viper.SetDefault(scanExtensionsKey, defaultScanExtensions)
	viper.SetDefault(scanLowKey, defaultScanLow)
	viper.SetDefault(scanHighKey, defaultScanHigh)
	viper.SetDefault(scanPolicyKey, defaultScanPolicy)

	viper.SetDefault(replaceRootKey, defaultReplaceRoot)
	viper.SetDefault(replaceDirContainsKey, defaultReplaceDirContains)
	viper.SetDefault(replaceFilesKey, defaultReplaceFiles)
	viper.SetDefault(replaceMarkerKey, defaultReplaceMarker)
	viper.SetDefault(replaceGuardKey, defaultReplaceGuard)
	viper.SetDefault(replaceTargetKey, defaultReplaceTarget)
	viper.SetDefault(replaceReplacementKey, defaultReplaceReplacement)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	if expanded, err := homedir.Expand(logPath); err == nil {
		logPath = expanded
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// parseCodepoint accepts decimal, 0x-prefixed hex, or U+XXXX notation.
func parseCodepoint(value string) (rune, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("empty code point")
	}

	var (
		n   int64
		err error
	)

	if strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") {
		n, err = strconv.ParseInt(s[2:], 16, 32)
	} else {
		n, err = strconv.ParseInt(s, 0, 32)
	}

	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", value, err)
	}

	if n < 0 || n > unicode.MaxRune {
		return 0, fmt.Errorf("code point %q is outside U+0000..U+10FFFF", value)
	}

	return rune(n), nil
}

// expandPath resolves a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", path, err)
	}

	return expanded, nil
}
