package main

import (
	"fmt"

	"github.com/ontanj/cmatch/config"

	"github.com/jessevdk/go-flags"
)

type InitCmd struct {
	Output string `short:"o" long:"output" default:"cmatch.toml" description:"Path of the configuration file to generate"`
	Force  bool   `short:"f" long:"force" description:"Replace an existing configuration file"`
}

func (cmd *InitCmd) Execute(_ []string) error {
	if err := config.Write(cmd.Output, config.NewDefaultConfig(), cmd.Force); err != nil {
		return err
	}
	fmt.Printf("configuration written to %s\n", cmd.Output)
	return nil
}

var initCmd InitCmd

func Init(_ []string, parser *flags.Parser) error {
	initCmd = InitCmd{}
	_, err := parser.AddCommand("init", "Generate a configuration file", "Write the default configuration as TOML, to be edited and passed to match with --config", &initCmd)
	return err
}
