package main

import (
	"github.com/spf13/pflag"
)

var listFlagAliases = map[string]string{
	"list": "file",
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}
	flags.SetNormalizeFunc(aliasNormalizeFunc(aliases, flags.GetNormalizeFunc()))
}

// aliasNormalizeFunc maps alias flag names onto their canonical names before
// handing them to next.
func aliasNormalizeFunc(aliases map[string]string, next func(*pflag.FlagSet, string) pflag.NormalizedName) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		if next == nil {
			return pflag.NormalizedName(name)
		}
		return next(f, name)
	}
}
