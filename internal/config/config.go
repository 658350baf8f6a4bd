package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every configuration validation failure.
// It is fatal at startup and never produced while serving.
var ErrInvalid = errors.New("invalid configuration")

// Config is the server configuration. It is built once by Load and shared
// read-only by every request handler; nothing mutates it afterwards.
type Config struct {
	// Root is the canonical absolute directory being served.
	Root string `yaml:"root"`
	// Listen holds validated host:port pairs, at least one.
	Listen []string `yaml:"listen"`
	// Port is applied to listen addresses that carry no port.
	Port uint16 `yaml:"port" default:"3000"`

	Index    string `yaml:"index" default:"index.html"`
	NotFound string `yaml:"not-found" default:"404.html"`
	// Cache is the max-age in seconds for cacheable assets.
	Cache uint32 `yaml:"cache" default:"3600"`

	All         bool `yaml:"all"`          // serve hidden files
	FollowLinks bool `yaml:"follow-links"` // allow symlinks out of Root
	SPA         bool `yaml:"spa"`
	NoCORS      bool `yaml:"no-cors"`
	Anonymize   bool `yaml:"anonymize"`
	Verbose     bool `yaml:"verbose"`
	ConfirmExit bool `yaml:"confirm-exit"`
	MDNS        bool `yaml:"mdns"`

	LogLevel string `yaml:"log-level,omitempty"`
}

// DefaultListenHost is used when no listen address is configured.
const DefaultListenHost = "127.0.0.1"

// Default returns a Config populated from the struct defaults. Root and
// Listen are left empty; Load fills them.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Tags are static; a failure here is a programming error.
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}
	return cfg
}

// Validate checks the fields that Load does not already normalize.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root directory is empty", ErrInvalid)
	}
	if !filepath.IsAbs(c.Root) {
		return fmt.Errorf("%w: root directory %q is not absolute", ErrInvalid, c.Root)
	}
	if len(c.Listen) == 0 {
		return fmt.Errorf("%w: no listen address", ErrInvalid)
	}
	if c.Index == "" {
		return fmt.Errorf("%w: index file name is empty", ErrInvalid)
	}
	if c.NotFound == "" {
		return fmt.Errorf("%w: not-found file name is empty", ErrInvalid)
	}
	return nil
}

// CanonicalRoot resolves dir to an absolute, symlink-free directory path.
func CanonicalRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve root %q: %v", ErrInvalid, dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: root directory does not exist: %s", ErrInvalid, abs)
		}
		return "", fmt.Errorf("%w: cannot access root directory: %v", ErrInvalid, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: cannot access root directory: %v", ErrInvalid, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: root path is not a directory: %s", ErrInvalid, resolved)
	}
	return resolved, nil
}

// URLs returns the browsable http:// URL of every listen address.
func (c *Config) URLs() []string {
	urls := make([]string, 0, len(c.Listen))
	for _, addr := range c.Listen {
		urls = append(urls, "http://"+addr)
	}
	return urls
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
