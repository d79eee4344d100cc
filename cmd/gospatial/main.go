// Command gospatial snapshots a web page into its Spatial DOM: a flat,
// id-addressable list of on-screen elements an autonomous agent can reason
// about without ever rendering a pixel.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/arturoeanton/gospatial/internal/pipeline"
	"github.com/arturoeanton/gospatial/spatial"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "gospatial: warning: loading .env: %v\n", err)
	}

	var (
		width    = flag.Float64("width", 1280, "viewport width in px")
		height   = flag.Float64("height", 800, "viewport height in px")
		timeout  = flag.Duration("timeout", 15*time.Second, "fetch timeout")
		compact  = flag.Bool("compact", false, "print the compact text format instead of JSON")
		aboveFold = flag.Bool("above-fold", false, "only emit elements within the initial viewport")
		stats    = flag.Bool("stats", false, "print element/interactive/link counts to stderr")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	targetURL := flag.Arg(0)

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	fetcher := pipeline.NewHTTPFetcher(*timeout)
	p := pipeline.New(fetcher, log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	snap, err := p.Run(ctx, targetURL, pipeline.Viewport{Width: *width, Height: *height})
	if err != nil {
		log.Error().Err(err).Msg("snapshot failed")
		os.Exit(1)
	}

	out := snap.Dom
	if *aboveFold {
		out = out.FilterAboveFold()
	}

	if *stats {
		s := out.Stats()
		fmt.Fprintf(os.Stderr, "elements=%s interactive=%s links=%s\n",
			humanize.Comma(int64(s.TotalElements)),
			humanize.Comma(int64(s.Interactive)),
			humanize.Comma(int64(s.Links)))
	}

	if *compact {
		fmt.Println(spatial.ToCompactString(out))
		return
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encoding snapshot")
		os.Exit(1)
	}
	fmt.Println(string(data))
}
