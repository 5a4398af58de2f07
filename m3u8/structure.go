package m3u8

/*
 This file defines data structures related to package.
*/

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Playlist interface applied to various playlist types.
type Playlist interface {
	Tags() []*TagLine
	All(name string) []Tag
	One(name string) Tag
	Version() *Version
	IsMaster() bool
	CalcMinVersion() (ver uint8, reason string)
	Encode() *bytes.Buffer
	String() string
}

var (
	// ErrUnsupported is returned by accessors that do not apply to a tag
	// variant, such as AUDIO on an EXT-X-I-FRAME-STREAM-INF tag.
	ErrUnsupported = errors.New("attribute not supported for this tag")
	// ErrAttributeAbsent is returned by accessors when the attribute is not
	// present on the tag line.
	ErrAttributeAbsent = errors.New("attribute absent")
	// ErrNoProgramDateTime is returned when a program date time value is empty.
	ErrNoProgramDateTime = errors.New("empty program date time")
)

// ReadError reports a failure of the underlying reader while a playlist was
// being consumed. Lines read before the failure are still parsed.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read playlist: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

const (
	// minVer is the minimum version of the HLS protocol reported by CalcMinVersion.
	// Version 3, means that floating point EXTINF durations are used.
	// [Protocol Version Compatibility]
	minVer = uint8(3)

	// DATETIME represents format for EXT-X-PROGRAM-DATE-TIME timestamps.
	// Format is [ISO/IEC 8601:2004] according to the [HLS spec].
	DATETIME = time.RFC3339Nano

	// unnamedPrefix prefixes the synthesized keys of positional attribute values.
	unnamedPrefix = "UNNAMED"
)

// ListType is type of playlist.
type ListType uint

const (
	// use 0 for undefined type
	MASTER ListType = iota + 1
	MEDIA
)

func (t ListType) String() string {
	switch t {
	case MASTER:
		return "master"
	case MEDIA:
		return "media"
	}
	return "undefined"
}

// Tag names known to the default registry.
const (
	TagM3U                   = "EXTM3U"
	TagVersion               = "EXT-X-VERSION"
	TagIndependentSegments   = "EXT-X-INDEPENDENT-SEGMENTS"
	TagStreamInf             = "EXT-X-STREAM-INF"
	TagIFrameStreamInf       = "EXT-X-I-FRAME-STREAM-INF"
	TagMedia                 = "EXT-X-MEDIA"
	TagSessionData           = "EXT-X-SESSION-DATA"
	TagSessionKey            = "EXT-X-SESSION-KEY"
	TagInf                   = "EXTINF"
	TagByteRange             = "EXT-X-BYTERANGE"
	TagTargetDuration        = "EXT-X-TARGETDURATION"
	TagMediaSequence         = "EXT-X-MEDIA-SEQUENCE"
	TagDiscontinuitySequence = "EXT-X-DISCONTINUITY-SEQUENCE"
	TagDiscontinuity         = "EXT-X-DISCONTINUITY"
	TagKey                   = "EXT-X-KEY"
	TagProgramDateTime       = "EXT-X-PROGRAM-DATE-TIME"
	TagAllowCache            = "EXT-X-ALLOW-CACHE"
	TagPlaylistType          = "EXT-X-PLAYLIST-TYPE"
	TagIFramesOnly           = "EXT-X-I-FRAMES-ONLY"
	TagStart                 = "EXT-X-START"
	TagMap                   = "EXT-X-MAP"
	TagGap                   = "EXT-X-GAP"
	TagDateRange             = "EXT-X-DATERANGE"
	TagSCTE35                = "EXT-X-SCTE35"
	TagCue                   = "EXT-X-CUE"
	TagCueOut                = "EXT-X-CUE-OUT"
	TagCueOutCont            = "EXT-X-CUE-OUT-CONT"
	TagCueIn                 = "EXT-X-CUE-IN"
	TagAsset                 = "EXT-X-ASSET"
	TagEndList               = "EXT-X-ENDLIST"
)

// Attribute provides a raw key-value pair for an attribute.
// Surrounding quotes are removed from Val and recorded in Quoted.
type Attribute struct {
	Key    string // Name of the attribute, or UNNAMED<n> for positional values
	Val    string // Value without surrounding quotes
	Quoted bool   // Quoted is true if the value was a quoted string
}

// Attributes is an ordered attribute list. Duplicate keys are kept;
// lookups return the last occurrence.
type Attributes []Attribute

// TagLine is one tag line of a playlist together with the URI line that
// followed it, if any. A TagLine is not modified after parsing.
type TagLine struct {
	Name    string     // Name is the tag name without the leading '#'
	Attrs   Attributes // Attrs is the decoded attribute list
	URI     string     // URI is the attached URI line, or the URI attribute when there is none
	URILine string     // URILine is the URI line that followed the tag, empty if none
	Raw     string     // Raw is the tag line as read
}

// Segment represents a media segment of a media playlist together with
// the context accumulated from the tags preceding it. Segments are built
// once per playlist and must not be modified.
type Segment struct {
	Tag                    Tag         // Tag is the segment-defining tag (*ExtInf or *ByteRange)
	Duration               float64     // Duration in seconds
	Title                  string      // EXTINF optional title
	URI                    string      // URI of the media segment
	MediaSequence          int         // MediaSequence is the sequence number of this segment
	DiscontinuitySequence  int         // EXT-X-DISCONTINUITY-SEQUENCE in effect
	Discontinuity          bool        // EXT-X-DISCONTINUITY preceded this segment
	CueIn                  bool        // EXT-X-CUE-IN preceded this segment
	Keys                   []*Key      // EXT-X-KEY tags in effect, in document order
	Map                    *SegmentMap // EXT-X-MAP in effect
	ProgramDateTime        string      // EXT-X-PROGRAM-DATE-TIME value preceding this segment
	ProgramDateTimeUpdated bool        // ProgramDateTimeUpdated is true if the anchor was set by a tag preceding this segment
	AbsoluteTime           int64       // AbsoluteTime in milliseconds since the epoch, anchored by EXT-X-PROGRAM-DATE-TIME
	StartTime              float64     // StartTime in seconds relative to the first segment
	CAID                   string      // CAID of the ad break from EXT-X-CUE or EXT-X-ASSET
	BreakDuration          *float64    // BreakDuration in seconds from the cue tags
	BreakElapsed           *float64    // BreakElapsed in seconds from EXT-X-CUE-OUT-CONT
	BreakID                *int        // BreakID from EXT-X-CUE
	BreakPTS               *float64    // BreakPTS from EXT-X-CUE TIME
	SCTE35                 *SCTE35     // SCTE35 tag preceding this segment
	EndList                bool        // EXT-X-ENDLIST has been seen
	Tags                   []Tag       // Tags are the non-header tags seen since the previous segment
}

// Key returns the most recently declared key in effect for the segment,
// or nil if the segment is not encrypted.
func (s *Segment) Key() *Key {
	if len(s.Keys) == 0 {
		return nil
	}
	return s.Keys[len(s.Keys)-1]
}

// End returns the relative end time of the segment in seconds.
func (s *Segment) End() float64 {
	return s.StartTime + s.Duration
}

/*
[hls-spec]: https:                       //datatracker.ietf.org/doc/html/draft-pantos-hls-rfc8216bis-16
[ISO/IEC 8601:2004]:http:                //www.iso.org/iso/catalogue_detail?csnumber=40874
[Protocol Version Compatibility]: https: //datatracker.ietf.org/doc/html/draft-pantos-hls-rfc8216bis-16#section-8
*/
