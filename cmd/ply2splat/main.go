/*
NAME
  ply2splat - converts a PLY Gaussian Splatting scene to the SPLAT
  streaming format.

DESCRIPTION
  ply2splat is a thin command-line front end over the convert
  package's public API. It parses flags, wires up a rotated log file,
  and calls convert.ConvertFileToFile; it does not itself implement
  any conversion logic.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/bastikohn/ply2splat/convert"
)

const progName = "ply2splat"

func main() {
	input := flag.String("input", "", "path to the input PLY file (required)")
	output := flag.String("output", "", "path to the output SPLAT file (required)")
	noSort := flag.Bool("no-sort", false, "disable the visibility-priority sort")
	logLevel := flag.Int("log-level", int(logging.Info), "log level, 0 (Debug) to 4 (Fatal)")
	logFile := flag.String("log-file", "", "path to a rotated log file; empty means stderr only")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintf(os.Stderr, "%s: --input and --output are required\n", progName)
		flag.Usage()
		os.Exit(2)
	}

	level := int8(*logLevel)
	if level < int8(logging.Debug) || level > int8(logging.Fatal) {
		level = int8(logging.Info)
	}

	var out io.Writer = os.Stderr
	if *logFile != "" {
		out = &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	log := logging.New(level, out, true)

	n, err := convert.ConvertFileToFile(*input, *output, convert.Options{
		Sort:   !*noSort,
		Logger: log,
	})
	if err != nil {
		log.Fatal("conversion failed", "error", err.Error())
		os.Exit(1)
	}

	log.Info("conversion complete", "splats", n, "output", *output)
}
