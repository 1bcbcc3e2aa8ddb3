package main

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// reorderArgs lets flags follow positional arguments. urfave/cli stops
// parsing flags at the first argument and only accepts global flags before
// the command name, so command flags found after a path are moved in front of
// the paths and global flags found after the command name are moved in front
// of the command. Subcommand names directly following the command stay in
// place. Everything after "--" is left alone.
func reorderArgs(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}
	globals := valueFlags(app.Flags)

	i := 1
	for i < len(args) {
		a := args[i]
		if a == "--" || !isFlag(a) {
			break
		}
		if globals[flagName(a)] && !strings.Contains(a, "=") {
			i++
		}
		i++
	}
	if i >= len(args) || args[i] == "--" {
		return args
	}
	cmd := app.Command(args[i])
	if cmd == nil {
		return args
	}
	end := i
	for end+1 < len(args) {
		sub := subcommand(cmd, args[end+1])
		if sub == nil {
			break
		}
		cmd, end = sub, end+1
	}
	local := valueFlags(cmd.Flags)

	var global, flags, positional []string
	rest := args[end+1:]
	for j := 0; j < len(rest); j++ {
		a := rest[j]
		if a == "--" {
			positional = append(positional, rest[j:]...)
			break
		}
		if !isFlag(a) {
			positional = append(positional, a)
			continue
		}

		name := flagName(a)
		target := &flags
		takesValue, known := local[name]
		if !known {
			if v, ok := globals[name]; ok {
				target, takesValue = &global, v
			}
		}
		*target = append(*target, a)
		if takesValue && !strings.Contains(a, "=") && j+1 < len(rest) {
			j++
			*target = append(*target, rest[j])
		}
	}

	out := make([]string, 0, len(args))
	out = append(out, args[:i]...)
	out = append(out, global...)
	out = append(out, args[i:end+1]...)
	out = append(out, flags...)
	return append(out, positional...)
}

func subcommand(cmd *cli.Command, name string) *cli.Command {
	for _, sub := range cmd.Subcommands {
		if sub.HasName(name) {
			return sub
		}
	}
	return nil
}

// valueFlags maps every flag name and alias to whether it takes a value.
func valueFlags(flags []cli.Flag) map[string]bool {
	m := make(map[string]bool)
	for _, f := range flags {
		_, isBool := f.(*cli.BoolFlag)
		for _, n := range f.Names() {
			m[n] = !isBool
		}
	}
	return m
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

func flagName(arg string) string {
	name := strings.TrimLeft(arg, "-")
	if k := strings.IndexByte(name, '='); k >= 0 {
		name = name[:k]
	}
	return name
}
