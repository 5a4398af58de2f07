package m3u8

/*
 This file defines functions related to playlist parsing.
*/

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TimeParse allows globally apply and/or override Time Parser function.
// Available variants:
//   - FullTimeParse - implements full featured ISO/IEC 8601:2004
//   - StrictTimeParse - implements only RFC3339 Nanoseconds format
var TimeParse func(value string) (time.Time, error) = FullTimeParse

// Parser turns manifest text into playlists. A Parser is safe for
// concurrent use once constructed.
type Parser struct {
	registry *Registry
	logger   zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithRegistry makes the parser build typed tags with r instead of the
// default registry. r must not be modified after it is handed over.
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.registry = r
	}
}

// WithLogger sets the logger used to report input that was skipped or
// could not be interpreted. The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// NewParser creates a parser using the default registry unless
// overridden by options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		registry: sharedRegistry(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = sync.OnceValue(func() *Parser {
	return NewParser()
})

// Decode detects type of playlist and decodes it.
func Decode(data bytes.Buffer) (Playlist, ListType, error) {
	return defaultParser().Decode(data)
}

// DecodeFrom detects type of playlist and decodes it from the reader.
// A failing reader yields a *ReadError together with the playlist
// decoded from the lines read so far.
func DecodeFrom(reader io.Reader) (Playlist, ListType, error) {
	return defaultParser().DecodeFrom(reader)
}

// DecodeString detects type of playlist and decodes it from s.
func DecodeString(s string) (Playlist, ListType) {
	return defaultParser().DecodeString(s)
}

// DecodeLines detects type of playlist and decodes it from lines.
func DecodeLines(lines []string) (Playlist, ListType) {
	return defaultParser().DecodeLines(lines)
}

// Decode detects type of playlist and decodes it.
func (p *Parser) Decode(data bytes.Buffer) (Playlist, ListType, error) {
	return p.decode(&data)
}

// DecodeFrom detects type of playlist and decodes it from the reader.
func (p *Parser) DecodeFrom(reader io.Reader) (Playlist, ListType, error) {
	return p.decode(bufio.NewReader(reader))
}

// DecodeString detects type of playlist and decodes it from s.
func (p *Parser) DecodeString(s string) (Playlist, ListType) {
	return p.DecodeLines(strings.Split(s, "\n"))
}

// DecodeLines detects type of playlist and decodes it from lines.
func (p *Parser) DecodeLines(lines []string) (Playlist, ListType) {
	state := new(decodingState)
	for _, line := range lines {
		p.decodeLine(state, line)
	}
	return p.build(state)
}

type lineReader interface {
	ReadString(delim byte) (string, error)
}

func (p *Parser) decode(r lineReader) (Playlist, ListType, error) {
	var readErr error
	state := new(decodingState)
	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			// a partial line may be truncated, keep what was complete
			readErr = &ReadError{Err: err}
			break
		}
		p.decodeLine(state, line)
		if err != nil {
			break
		}
	}
	pl, listType := p.build(state)
	return pl, listType, readErr
}

// Internal structure for decoding lines of input with a list type detection
type decodingState struct {
	listType ListType
	lines    []*TagLine
	last     *TagLine
}

// Parse one line of a playlist.
func (p *Parser) decodeLine(state *decodingState, line string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
	case isTagLine(line):
		tag := ParseTagLine(line)
		state.lines = append(state.lines, tag)
		state.last = tag
		if tag.Name == TagStreamInf {
			state.listType = MASTER
		}
	case strings.HasPrefix(line, "#"):
		// comment
	case state.last == nil:
		p.logger.Debug().Str("line", line).Msg("dropping URI line without a preceding tag")
	default:
		state.last.attachURI(line)
	}
}

func (p *Parser) build(state *decodingState) (Playlist, ListType) {
	base := newPlaylist(state.lines, p.registry, p.logger)
	if state.listType == MASTER {
		return &MasterPlaylist{playlist: base}, MASTER
	}
	return &MediaPlaylist{playlist: base}, MEDIA
}

// StrictTimeParse implements RFC3339 with Nanoseconds accuracy.
func StrictTimeParse(value string) (time.Time, error) {
	return time.Parse(DATETIME, value)
}

// FullTimeParse implements ISO/IEC 8601:2004.
func FullTimeParse(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999Z07",
	}
	var (
		err error
		t   time.Time
	)
	for _, layout := range layouts {
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return t, err
}
