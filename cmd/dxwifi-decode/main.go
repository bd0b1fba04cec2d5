// Command dxwifi-decode recovers a message from an encoded blob,
// mirroring the file-tool contract of the original decode.c: the input
// file is memory-mapped and handed wholesale to the codec, and the
// recovered message is written to --output or standard output.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	dxwifi "github.com/oresat/dxwifi-fec/src"
)

var (
	inputPath  string
	outputPath string
	verbosity  int
	quiet      bool
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: dxwifi-decode [--input FILE] [--output FILE] [-v...] [-q]\n\n")
	pflag.PrintDefaults()
}

func init() {
	pflag.StringVarP(&inputPath, "input", "i", "", "input file to decode (required; streaming mode without it is unimplemented)")
	pflag.StringVarP(&outputPath, "output", "o", "", "output file for the decoded message (default: stdout)")
	pflag.CountVarP(&verbosity, "verbose", "v", "increase logging verbosity (repeatable)")
	pflag.BoolVarP(&quiet, "quiet", "q", false, "suppress all but error logging")
	pflag.Usage = usage
}

func main() {
	pflag.Parse()

	configureLogLevel()

	if inputPath == "" {
		log.Error("streaming mode is requested without --input and is unimplemented")
		os.Exit(1)
	}

	encoded, cleanup, err := mmapFile(inputPath)
	if err != nil {
		log.Error("failed to map input file", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	decoded, err := dxwifi.Decode(encoded)
	if err != nil {
		log.Error("decode failed", "err", err)
		os.Exit(1)
	}

	if err := writeOutput(decoded); err != nil {
		log.Error("failed to write output", "err", err)
		os.Exit(1)
	}

	log.Info("decoded message", "bytes", len(decoded))
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

// mmapFile maps the input file read-write (MAP_SHARED), matching the
// original decode_file's mmap(..., PROT_WRITE, MAP_SHARED, fd, 0) even
// though decode never mutates it in this implementation; kept for
// parity with a future in-place RS-correction optimization.
func mmapFile(path string) (data []byte, cleanup func(), err error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	size := info.Size()
	if size == 0 {
		return nil, func() {}, nil
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	return data, func() { _ = unix.Munmap(data) }, nil
}

func writeOutput(data []byte) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(outputPath, data, 0o644)
}
