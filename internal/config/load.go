package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Viper keys. Flags are registered under the same names.
const (
	KeyRoot        = "root"
	KeyListen      = "listen"
	KeyPort        = "port"
	KeyIndex       = "index"
	KeyNotFound    = "not-found"
	KeyCache       = "cache"
	KeyAll         = "all"
	KeyFollowLinks = "follow-links"
	KeySPA         = "spa"
	KeyNoCORS      = "no-cors"
	KeyAnonymize   = "anonymize"
	KeyVerbose     = "verbose"
	KeyConfirmExit = "confirm-exit"
	KeyMDNS        = "mdns"
	KeyLogLevel    = "log-level"
)

// EnvPrefix namespaces environment overrides: ZY_SPA, ZY_CACHE, ZY_NOT_FOUND …
const EnvPrefix = "ZY"

// PortEnvVar is the conventional platform port variable. Unlike ZY_PORT an
// unparseable value is ignored with a warning.
const PortEnvVar = "PORT"

// NewViper returns a viper instance reading ZY_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfigFile loads a YAML config file into v. An explicit path must
// exist; otherwise the default location is tried and a missing file is not
// an error. It returns the path that was read, or "".
func ReadConfigFile(v *viper.Viper, explicit string) (string, error) {
	path := explicit
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return "", nil
		}
		if _, err := os.Stat(p); err != nil {
			return "", nil
		}
		path = p
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return "", fmt.Errorf("%w: config file not found: %s", ErrInvalid, path)
		}
		return "", fmt.Errorf("%w: failed to parse config file %s: %v", ErrInvalid, path, err)
	}
	return path, nil
}

// Load builds the immutable Config from defaults, the config file, ZY_*
// environment variables and flags bound to v, in increasing precedence.
// dir is the positional root argument and wins over the "root" key.
func Load(v *viper.Viper, dir string, log *zap.Logger) (*Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := Default()

	if dir == "" && v.IsSet(KeyRoot) {
		dir = v.GetString(KeyRoot)
	}
	root, err := CanonicalRoot(dir)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	port, err := resolvePort(v, log)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if v.IsSet(KeyCache) {
		cache, err := ParseCacheSeconds(v.GetString(KeyCache))
		if err != nil {
			return nil, err
		}
		cfg.Cache = cache
	}

	if v.IsSet(KeyIndex) {
		cfg.Index = v.GetString(KeyIndex)
	}
	if v.IsSet(KeyNotFound) {
		cfg.NotFound = v.GetString(KeyNotFound)
	}

	cfg.All = v.GetBool(KeyAll)
	cfg.FollowLinks = v.GetBool(KeyFollowLinks)
	cfg.SPA = v.GetBool(KeySPA)
	cfg.NoCORS = v.GetBool(KeyNoCORS)
	cfg.Anonymize = v.GetBool(KeyAnonymize)
	cfg.Verbose = v.GetBool(KeyVerbose)
	cfg.ConfirmExit = v.GetBool(KeyConfirmExit)
	cfg.MDNS = v.GetBool(KeyMDNS)
	cfg.LogLevel = v.GetString(KeyLogLevel)

	listen := v.GetStringSlice(KeyListen)
	if len(listen) == 0 {
		listen = []string{DefaultListenHost}
	}
	seen := make(map[string]bool, len(listen))
	for _, raw := range listen {
		addr, err := ParseListenAddr(raw, cfg.Port)
		if err != nil {
			return nil, err
		}
		if seen[addr] {
			continue
		}
		seen[addr] = true
		cfg.Listen = append(cfg.Listen, addr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePort prefers an explicit port (flag, ZY_PORT or config file), then
// a well-formed PORT variable, then the default.
func resolvePort(v *viper.Viper, log *zap.Logger) (uint16, error) {
	if v.IsSet(KeyPort) {
		return ParsePort(v.GetString(KeyPort))
	}
	if env, ok := os.LookupEnv(PortEnvVar); ok && env != "" {
		p, err := ParsePort(env)
		if err != nil {
			log.Warn("Ignoring invalid PORT environment variable", zap.String("value", env))
		} else {
			return p, nil
		}
	}
	return Default().Port, nil
}
