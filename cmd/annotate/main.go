package main

import (
	"flag"
	"fmt"
	"os"

	textbridge "github.com/annotext/textbridge"
	"github.com/annotext/textbridge/encoder"
	"github.com/annotext/textbridge/model"
)

func main() {
	var (
		modelPath  = flag.String("model", "", "Path to model file")
		fd         = flag.Int("fd", -1, "Open file descriptor holding the model")
		offset     = flag.Int64("offset", 0, "Byte offset of the model within -fd")
		length     = flag.Int64("length", -1, "Byte length of the model within -fd")
		dumpConfig = flag.Bool("dump-encoder-config", false, "Print the default encoder config blob and exit")
	)
	flag.Parse()

	if *dumpConfig {
		if err := dumpEncoderConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	src, err := sourceFromFlags(*modelPath, *fd, *offset, *length)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: annotate -model <file>")
		fmt.Fprintln(os.Stderr, "       annotate -fd <n> [-offset <n> -length <n>]")
		fmt.Fprintln(os.Stderr, "       annotate -dump-encoder-config")
		os.Exit(1)
	}

	if err := printInfo(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func sourceFromFlags(path string, fd int, offset, length int64) (textbridge.Source, error) {
	switch {
	case path != "":
		return textbridge.PathSource(path), nil
	case fd >= 0 && length >= 0:
		return textbridge.RegionSource(fd, offset, length), nil
	case fd >= 0:
		return textbridge.FDSource(fd), nil
	default:
		return textbridge.Source{}, fmt.Errorf("no model source given")
	}
}

func printInfo(src textbridge.Source) error {
	meta := model.ReadMetadata(src)
	if meta == (model.Metadata{}) {
		return fmt.Errorf("unreadable model source %s", src)
	}

	fmt.Printf("Name:    %s\n", meta.Name)
	fmt.Printf("Version: %d\n", meta.Version)
	fmt.Printf("Locales: %s\n", meta.Locales)

	if tags := meta.LocaleTags(); len(tags) > 0 {
		fmt.Println("Parsed locale tags:")
		for _, tag := range tags {
			fmt.Printf("  %s\n", tag)
		}
	}
	return nil
}

func dumpEncoderConfig() error {
	blob, err := encoder.Default().Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(blob, '\n'))
	return err
}
