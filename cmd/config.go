package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "solflat"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"
	noCacheFlagName   = "no-cache"
	compilerFlagName  = "compiler"
	outDirFlagName    = "out-dir"
	formatFlagName    = "format"
	parallelFlagName  = "parallel"
	defineFlagName    = "define"
	constantsFlagName = "constants"
	outputFlagName    = "output"
	diffFlagName      = "diff"

	compilerPathKey     = "compiler.path"
	compilerOptimizeKey = "compiler.optimize"
	compilerTimeoutKey  = "compiler.timeout"
	buildOutDirKey      = "build.out_dir"
	buildFormatKey      = "build.format"
	buildParallelKey    = "build.parallel"
	constantsFileKey    = "constants.file"
	cacheDirKey         = "cache.dir"

	defaultCompilerPath     = "solc"
	defaultCompilerOptimize = true
	defaultCompilerTimeout  = time.Minute * 2
	defaultBuildOutDir      = "build"
	defaultBuildFormat      = "js"
	defaultBuildParallel    = 1
	defaultConstantsFile    = ""
	defaultCacheDir         = ".solflat-cache"
	defaultNoCache          = false

	envPrefix = "SOLFLAT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".solflat.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
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
	viper.SetDefault(compilerPathKey, defaultCompilerPath)
	viper.SetDefault(compilerOptimizeKey, defaultCompilerOptimize)
	viper.SetDefault(compilerTimeoutKey, int64(defaultCompilerTimeout.Seconds()))
	viper.SetDefault(buildOutDirKey, defaultBuildOutDir)
	viper.SetDefault(buildFormatKey, defaultBuildFormat)
	viper.SetDefault(buildParallelKey, defaultBuildParallel)
	viper.SetDefault(constantsFileKey, defaultConstantsFile)
	viper.SetDefault(cacheDirKey, defaultCacheDir)
	viper.SetDefault(noCacheFlagName, defaultNoCache)

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
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		fmt.Fprintf(os.Stderr, "solflat: ignoring unreadable config %s: %v\n", configFileName, err)
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
