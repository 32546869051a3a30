package main

import (
	"errors"
	"strings"
)

type rootArgs struct {
	cfgPath   string
	overrides []string
}

// parseRootArgs pulls -c key=value and --config out of args and leaves
// everything else, in order, for the subcommand.
func parseRootArgs(args []string) (rootArgs, []string, error) {
	var root rootArgs
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || (name != "c" && name != "config") {
			rest = append(rest, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return rootArgs{}, nil, errors.New("flag needs an argument: " + arg)
			}
			i++
			value = args[i]
		}
		if name == "c" {
			root.overrides = append(root.overrides, value)
		} else {
			root.cfgPath = value
		}
	}
	return root, rest, nil
}
