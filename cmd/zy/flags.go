package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/logging"
)

// registerFlags declares the serving flags on cmd and binds each to the
// viper key of the same name. Defaults shown in help come from
// config.Default; unset flags never override the config file.
func registerFlags(cmd *cobra.Command, v *viper.Viper) {
	def := config.Default()
	f := cmd.PersistentFlags()

	f.StringSliceP(config.KeyListen, "l", nil, "Listen address: PORT, HOST, HOST:PORT or [IPv6]:PORT (repeatable, default "+config.DefaultListenHost+")")
	f.Uint16P(config.KeyPort, "p", def.Port, "Port for listen addresses without one (env PORT)")
	f.BoolP(config.KeySPA, "s", false, "Serve the index file for unknown paths requested as HTML")
	f.StringP(config.KeyIndex, "i", def.Index, "Index file name")
	f.String("404", def.NotFound, "Page served with status 404")
	f.StringP(config.KeyCache, "c", strconv.FormatUint(uint64(def.Cache), 10), "Cache max-age in seconds for static assets")
	f.BoolP(config.KeyAll, "a", false, "Serve hidden files")
	f.BoolP(config.KeyFollowLinks, "f", false, "Follow symlinks that point outside the root")
	f.Bool(config.KeyNoCORS, false, "Do not send Access-Control-Allow-Origin")
	f.BoolP(config.KeyAnonymize, "A", false, "Do not send the Server header")
	f.BoolP(config.KeyVerbose, "v", false, "Log every request (implies --log-level debug)")
	f.Bool(config.KeyConfirmExit, false, "Require a second Ctrl-C to exit")
	f.Bool(config.KeyMDNS, false, "Advertise the server over mDNS")
	f.String(config.KeyLogLevel, "", "Log level: debug, info, warn, error (env "+logging.LogLevelEnvVar+")")

	bind := map[string]string{
		config.KeyListen:      config.KeyListen,
		config.KeyPort:        config.KeyPort,
		config.KeySPA:         config.KeySPA,
		config.KeyIndex:       config.KeyIndex,
		config.KeyNotFound:    "404",
		config.KeyCache:       config.KeyCache,
		config.KeyAll:         config.KeyAll,
		config.KeyFollowLinks: config.KeyFollowLinks,
		config.KeyNoCORS:      config.KeyNoCORS,
		config.KeyAnonymize:   config.KeyAnonymize,
		config.KeyVerbose:     config.KeyVerbose,
		config.KeyConfirmExit: config.KeyConfirmExit,
		config.KeyMDNS:        config.KeyMDNS,
		config.KeyLogLevel:    config.KeyLogLevel,
	}
	for key, flag := range bind {
		// only fails for a nil flag
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}
