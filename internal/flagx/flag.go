// Package flagx contains helpers for sharing os.Args between several small
// stdlib flag sets (config file lookup, config overrides, CLI command).
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
func FilterArgs(args []string, allowedFlags []string) []string {
	filtered, _ := split(args, allowedFlags)
	return filtered
}

// Positional returns the arguments that are neither one of knownFlags nor a
// value following one of them. Unknown dash-prefixed tokens are kept so the
// caller can report them.
func Positional(args []string, knownFlags []string) []string {
	_, rest := split(args, knownFlags)
	return rest
}

func split(args []string, allowedFlags []string) (filtered, rest []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" or "-f=value"
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			// the next token is the value unless it looks like another flag
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
			continue
		}
		rest = append(rest, arg)
	}

	return filtered, rest
}

// ConfigFlags lists the flags that select a JSON config file.
var ConfigFlags = []string{"-c", "-config"}

// ConfigPath extracts the config file path provided via -c or -config.
// Other arguments are ignored. If neither flag is present, "" is returned.
func ConfigPath(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFlags))

	return config
}
