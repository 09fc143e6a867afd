package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

var (
	// CLIVersion is overridden at build time with -ldflags
	CLIVersion     = "dev"
	CLIVersionHash = ""
)

func main() {
	// the parser prints every error itself
	if err := Main(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// Main registers every command and runs the one named in args.
func Main(args []string) error {
	parser := flags.NewParser(&struct{}{}, flags.Default)
	parser.Name = "cmatch"

	for _, register := range []func([]string, *flags.Parser) error{
		Match,
		Init,
		Version,
	} {
		if err := register(args, parser); err != nil {
			return err
		}
	}

	_, err := parser.ParseArgs(args)
	if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
		return nil
	}
	return err
}
