package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

const bin = "dat2csv"

func main() {
	parser := flags.NewNamedParser(bin, flags.Default)
	parser.AddCommand("extract", "Decode dat files into CSV.", extractDescription, &CmdExtract{})
	parser.AddCommand("version", "Show the version information.", "", &CmdVersion{})

	_, err := parser.Parse()
	if err != nil {
		if err, ok := err.(*flags.Error); ok {
			if err.Type == flags.ErrHelp {
				os.Exit(0)
			}

			parser.WriteHelp(os.Stdout)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

type cmd struct {
	Verbose bool `short:"v" description:"Activates the verbose mode"`
}

const version = "1.0.0"

type CmdVersion struct{}

func (c *CmdVersion) Execute(args []string) error {
	fmt.Printf("%s %s\n", bin, version)
	return nil
}
