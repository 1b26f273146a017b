package main

import (
	"github.com/spf13/pflag"
)

// bindFlags binds config keys to the named flags.
func bindFlags(lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		f := lookup(name)
		if f == nil {
			panic("questtool: unknown flag " + name)
		}
		if err := settings.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
}
