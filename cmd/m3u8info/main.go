// Command m3u8info prints a summary of an HLS playlist read from a file or stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mogiioin/hlsparser/m3u8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	segments   bool
	tags       bool
	bitrate    int
	minVersion bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "m3u8info [file]",
		Short: "Summarize an HLS m3u8 playlist",
		Long: `Parse an HLS playlist and print a summary of it.

The playlist is read from the given file, or from stdin when the file is
omitted or "-".

Examples:
  # Summarize a media playlist and list its segments
  m3u8info --segments index.m3u8

  # Keep only the variant nearest to 2 Mbit/s and print the result
  m3u8info --bitrate 2000000 master.m3u8`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.segments, "segments", false,
		"list media segments with their accumulated context")
	cmd.Flags().BoolVar(&opts.tags, "tags", false,
		"list every tag line with its attributes")
	cmd.Flags().IntVar(&opts.bitrate, "bitrate", 0,
		"keep only the variant nearest to this bitrate and print the playlist")
	cmd.Flags().BoolVar(&opts.minVersion, "min-version", false,
		"print the minimal protocol version the playlist requires")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"log skipped or uninterpretable input")
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).With().Timestamp().Logger()
}

func run(cmd *cobra.Command, args []string, opts options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open playlist: %w", err)
		}
		defer f.Close()
		in = f
	}

	parser := m3u8.NewParser(m3u8.WithLogger(logger.With().Str("source", name).Logger()))
	p, listType, err := parser.DecodeFrom(in)
	if err != nil {
		// the lines read before the failure are still summarized
		logger.Error().Err(err).Str("source", name).Msg("playlist read was incomplete")
	}
	out := cmd.OutOrStdout()

	if opts.bitrate > 0 {
		master, ok := p.(*m3u8.MasterPlaylist)
		if !ok {
			return fmt.Errorf("%s is a %s playlist, --bitrate needs a master playlist", name, listType)
		}
		v := master.KeepOnlyNearestToBitrate(opts.bitrate)
		if v == nil {
			return fmt.Errorf("no variant streams in %s", name)
		}
		logger.Debug().Int("bandwidth", v.Bandwidth()).Str("uri", v.URI()).Msg("kept variant")
		_, werr := io.WriteString(out, master.String())
		return errors.Join(err, werr)
	}

	fmt.Fprintf(out, "type: %s\n", listType)
	switch pl := p.(type) {
	case *m3u8.MasterPlaylist:
		printMaster(out, pl)
	case *m3u8.MediaPlaylist:
		printMedia(out, pl)
		if opts.segments {
			printSegments(out, pl.Segments())
		}
	}

	if opts.minVersion {
		ver, reason := p.CalcMinVersion()
		fmt.Fprintf(out, "min-version: %d (%s)\n", ver, reason)
	}
	if opts.tags {
		for _, line := range p.Tags() {
			fmt.Fprintf(out, "%s\t%s\n", line.Name, formatAttrs(line.Attrs))
		}
	}
	return err
}

func printMaster(w io.Writer, p *m3u8.MasterPlaylist) {
	if v := p.Version(); v != nil {
		fmt.Fprintf(w, "version: %d\n", v.Number())
	}
	for _, v := range p.VariantStreams() {
		fmt.Fprintf(w, "variant: bandwidth=%d resolution=%s codecs=%q uri=%s\n",
			v.Bandwidth(), v.Resolution(), v.Codecs(), v.URI())
		for _, r := range p.RenditionsFor(v) {
			fmt.Fprintf(w, "  rendition: type=%s group=%s name=%q uri=%s\n",
				r.Type(), r.GroupID(), r.Name(), r.URI())
		}
	}
	for _, v := range p.IFrameStreams() {
		fmt.Fprintf(w, "i-frame: bandwidth=%d uri=%s\n", v.Bandwidth(), v.URI())
	}
}

func printMedia(w io.Writer, p *m3u8.MediaPlaylist) {
	if v := p.Version(); v != nil {
		fmt.Fprintf(w, "version: %d\n", v.Number())
	}
	if td := p.TargetDuration(); td != nil {
		fmt.Fprintf(w, "target-duration: %d\n", td.Duration())
	}
	if ms := p.MediaSequence(); ms != nil {
		fmt.Fprintf(w, "media-sequence: %d\n", ms.SequenceNumber())
	}
	if pt := p.PlaylistType(); pt != nil {
		fmt.Fprintf(w, "playlist-type: %s\n", pt.Type())
	}
	fmt.Fprintf(w, "segments: %d\n", len(p.Segments()))
	fmt.Fprintf(w, "duration: %.3f\n", p.TotalDuration())
	fmt.Fprintf(w, "endlist: %t\n", p.EndList())
}

func printSegments(w io.Writer, segments []*m3u8.Segment) {
	for _, s := range segments {
		var flags []string
		if s.Discontinuity {
			flags = append(flags, "discontinuity")
		}
		if s.CueIn {
			flags = append(flags, "cue-in")
		}
		if s.BreakDuration != nil {
			flags = append(flags, fmt.Sprintf("break=%.3f", *s.BreakDuration))
		}
		if k := s.Key(); k != nil {
			flags = append(flags, "key="+k.Method())
		}
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%s\t%s\n",
			s.MediaSequence, s.StartTime, s.Duration, s.URI, strings.Join(flags, ","))
	}
}

func formatAttrs(attrs m3u8.Attributes) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Key+"="+a.Val)
	}
	return strings.Join(parts, " ")
}
