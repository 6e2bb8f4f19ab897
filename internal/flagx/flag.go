// Package flagx lets independent config stages pick their own flags out of
// os.Args without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belong to allowedFlags, keeping
// each flag's value. Both "-c conf.json" and "-c=conf.json" forms are kept; a
// following token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// Positional returns the arguments of os.Args[1:] that are neither flags nor
// flag values, e.g. a subcommand name. knownFlags lists flags that take a value.
func Positional(knownFlags []string) []string {
	takesValue := make(map[string]struct{}, len(knownFlags))
	for _, f := range knownFlags {
		takesValue[f] = struct{}{}
	}

	args := os.Args[1:]
	out := make([]string, 0)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			out = append(out, arg)
			continue
		}
		if strings.Contains(arg, "=") {
			continue
		}
		if _, ok := takesValue[arg]; ok && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
		}
	}
	return out
}

// lookupString parses only the given aliases of one string flag from
// os.Args[1:]. The last occurrence wins; a missing flag yields "".
func lookupString(aliases ...string) string {
	var value string

	dashed := make([]string, len(aliases))
	for i, a := range aliases {
		dashed[i] = "-" + a
	}
	args := FilterArgs(os.Args[1:], dashed)

	fs := flag.NewFlagSet(aliases[0], flag.ContinueOnError)
	for _, a := range aliases {
		fs.StringVar(&value, a, "", "")
	}
	_ = fs.Parse(args)

	return value
}

// JsonConfigFlags returns the JSON config path given via -c or -config.
func JsonConfigFlags() string {
	return lookupString("config", "c")
}

// EnvFileFlags returns the dotenv file path given via -e or -env-file.
func EnvFileFlags() string {
	return lookupString("env-file", "e")
}
