// Command grin compresses and decompresses files in the GRIN format.
//
// Usage:
//
//	grin encode <infile> <outfile>
//	grin decode <infile> <outfile>
package main

import (
	"fmt"
	"log"
	"os"

	grin "github.com/suzuneyagi/grin-compression"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: grin <encode|decode> <infile> <outfile>")
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("grin: ")

	if len(os.Args) != 4 {
		usage()
	}

	var run func(dst, src *os.File) error
	switch os.Args[1] {
	case "encode":
		run = func(dst, src *os.File) error { return grin.Compress(dst, src) }
	case "decode":
		run = func(dst, src *os.File) error { return grin.Decompress(dst, src) }
	default:
		usage()
	}

	if err := transform(os.Args[2], os.Args[3], run); err != nil {
		log.Fatal(err)
	}
}

// transform runs fn from infile to outfile, removing the output file when fn
// fails so a rejected stream leaves nothing behind.
func transform(infile, outfile string, fn func(dst, src *os.File) error) error {
	src, err := os.Open(infile)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(outfile)
	if err != nil {
		return err
	}
	if err := fn(dst, src); err != nil {
		dst.Close()
		os.Remove(outfile)
		return err
	}
	return dst.Close()
}
