// Command dxwifi-encode is the symmetric counterpart to dxwifi-decode:
// not present in the retrieved original source (only decode.c survived
// distillation), but implied by its reference to a companion encoder and
// by the codec's two-entry-point contract.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	dxwifi "github.com/oresat/dxwifi-fec/src"
)

var (
	inputPath  string
	outputPath string
	coderate   float64
	verbosity  int
	quiet      bool
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: dxwifi-encode --input FILE [--coderate F] [--output FILE] [-v...] [-q]\n\n")
	pflag.PrintDefaults()
}

func init() {
	pflag.StringVarP(&inputPath, "input", "i", "", "input file to encode (required)")
	pflag.StringVarP(&outputPath, "output", "o", "", "output file for the encoded blob (default: stdout)")
	pflag.Float64VarP(&coderate, "coderate", "c", 0.5, "k/n coderate; lower values mean more redundancy")
	pflag.CountVarP(&verbosity, "verbose", "v", "increase logging verbosity (repeatable)")
	pflag.BoolVarP(&quiet, "quiet", "q", false, "suppress all but error logging")
	pflag.Usage = usage
}

func main() {
	pflag.Parse()

	configureLogLevel()

	if inputPath == "" {
		log.Error("--input is required")
		os.Exit(1)
	}

	message, err := os.ReadFile(inputPath)
	if err != nil {
		log.Error("failed to read input file", "err", err)
		os.Exit(1)
	}

	encoded, err := dxwifi.Encode(message, coderate)
	if err != nil {
		log.Error("encode failed", "err", err)
		os.Exit(1)
	}

	if err := writeOutput(encoded); err != nil {
		log.Error("failed to write output", "err", err)
		os.Exit(1)
	}

	log.Info("encoded message", "bytes", len(encoded))
}

func configureLogLevel() {
	switch {
	case quiet:
		log.SetLevel(log.ErrorLevel)
	case verbosity >= 2:
		log.SetLevel(log.DebugLevel)
	case verbosity == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	dxwifi.Log.SetLevel(log.GetLevel())
}

func writeOutput(data []byte) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(outputPath, data, 0o644)
}
