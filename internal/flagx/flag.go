// Package flagx holds small helpers for packages that parse only a subset of
// the process command line.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (and their values) from
// args, preserving order. Like the flag package, "-name" and "--name" are
// the same flag, and both "-name value" and "-name=value" are accepted. A
// separate value is taken only when the next token does not start with a dash.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[flagName(f)] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := names[flagName(name)]; !ok {
			continue
		}
		out = append(out, arg)

		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigFile returns the config file path given in args with -c or -config,
// or "" when neither is present. Other arguments are ignored so the caller's
// own flag set is not disturbed; the last occurrence wins.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file (JSON or YAML)")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
