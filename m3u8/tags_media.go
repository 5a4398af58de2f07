package m3u8

import (
	"strconv"
	"strings"
	"time"
)

// ExtInf represents EXTINF, the duration and title of a media segment.
type ExtInf struct{ tag }

func newExtInf(line *TagLine) (Tag, error) {
	return &ExtInf{tag{line}}, nil
}

func (*ExtInf) Kind() Kind   { return KindInf }
func (*ExtInf) Header() bool { return false }

// Duration returns the segment duration in seconds, 0 if unparsable.
func (e *ExtInf) Duration() float64 {
	d, _ := e.float(UnnamedKey(0))
	return d
}

// Title returns the optional title following the duration.
func (e *ExtInf) Title() string { return e.str(UnnamedKey(1)) }

// URI returns the URI line of the segment.
func (e *ExtInf) URI() string { return e.line.URI }

// ByteRange represents EXT-X-BYTERANGE:<n>[@<o>].
type ByteRange struct{ tag }

func newByteRange(line *TagLine) (Tag, error) {
	return &ByteRange{tag{line}}, nil
}

func (*ByteRange) Kind() Kind   { return KindByteRange }
func (*ByteRange) Header() bool { return false }

func (b *ByteRange) parts() (string, string, bool) {
	return strings.Cut(b.str(UnnamedKey(0)), "@")
}

// Length returns the length of the sub-range in bytes, 0 if unparsable.
func (b *ByteRange) Length() int64 {
	n, _, _ := b.parts()
	length, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	if err != nil {
		return 0
	}
	return length
}

// Offset returns the start of the sub-range. It reports false when the
// offset is omitted, meaning the range follows the previous one.
func (b *ByteRange) Offset() (int64, bool) {
	_, o, found := b.parts()
	if !found {
		return 0, false
	}
	offset, err := strconv.ParseInt(strings.TrimSpace(o), 10, 64)
	if err != nil {
		return 0, false
	}
	return offset, true
}

// URI returns the URI line of the segment.
func (b *ByteRange) URI() string { return b.line.URI }

// TargetDuration represents EXT-X-TARGETDURATION.
type TargetDuration struct{ tag }

func newTargetDuration(line *TagLine) (Tag, error) {
	return &TargetDuration{tag{line}}, nil
}

func (*TargetDuration) Kind() Kind   { return KindTargetDuration }
func (*TargetDuration) Header() bool { return true }

// Duration returns the target duration in seconds, 6 if absent or unparsable.
func (t *TargetDuration) Duration() int { return t.integer(UnnamedKey(0), 6) }

// MediaSequence represents EXT-X-MEDIA-SEQUENCE.
type MediaSequence struct{ tag }

func newMediaSequence(line *TagLine) (Tag, error) {
	return &MediaSequence{tag{line}}, nil
}

func (*MediaSequence) Kind() Kind   { return KindMediaSequence }
func (*MediaSequence) Header() bool { return true }

// SequenceNumber returns the media sequence number of the first segment,
// 1 if absent or unparsable.
func (m *MediaSequence) SequenceNumber() int { return m.integer(UnnamedKey(0), 1) }

// DiscontinuitySequence represents EXT-X-DISCONTINUITY-SEQUENCE.
type DiscontinuitySequence struct{ tag }

func newDiscontinuitySequence(line *TagLine) (Tag, error) {
	return &DiscontinuitySequence{tag{line}}, nil
}

func (*DiscontinuitySequence) Kind() Kind   { return KindDiscontinuitySequence }
func (*DiscontinuitySequence) Header() bool { return true }

// SequenceNumber returns the discontinuity sequence number, 0 if absent or unparsable.
func (d *DiscontinuitySequence) SequenceNumber() int { return d.integer(UnnamedKey(0), 0) }

// keyAttrs holds the attributes shared by EXT-X-KEY and EXT-X-SESSION-KEY.
type keyAttrs struct{ tag }

// Method returns METHOD: NONE, AES-128 or SAMPLE-AES.
func (k keyAttrs) Method() string { return k.str("METHOD") }

// URI returns the key URI.
func (k keyAttrs) URI() string { return k.str("URI") }

// IV returns the initialization vector as written.
func (k keyAttrs) IV() string { return k.str("IV") }

// KeyFormat returns KEYFORMAT.
func (k keyAttrs) KeyFormat() string { return k.str("KEYFORMAT") }

// KeyFormatVersions returns KEYFORMATVERSIONS.
func (k keyAttrs) KeyFormatVersions() string { return k.str("KEYFORMATVERSIONS") }

func requireMethod(line *TagLine) error {
	if _, err := (tag{line}).optional("METHOD"); err != nil {
		return err
	}
	return nil
}

// Key represents EXT-X-KEY. It applies to every segment that follows it
// until the next EXT-X-KEY.
type Key struct{ keyAttrs }

func newKey(line *TagLine) (Tag, error) {
	if err := requireMethod(line); err != nil {
		return nil, err
	}
	return &Key{keyAttrs{tag{line}}}, nil
}

func (*Key) Kind() Kind   { return KindKey }
func (*Key) Header() bool { return false }

// ProgramDateTime represents EXT-X-PROGRAM-DATE-TIME.
type ProgramDateTime struct{ tag }

func newProgramDateTime(line *TagLine) (Tag, error) {
	return &ProgramDateTime{tag{line}}, nil
}

func (*ProgramDateTime) Kind() Kind   { return KindProgramDateTime }
func (*ProgramDateTime) Header() bool { return false }

// Value returns the timestamp as written.
func (p *ProgramDateTime) Value() string { return p.str(UnnamedKey(0)) }

// Time parses the timestamp with TimeParse.
func (p *ProgramDateTime) Time() (time.Time, error) {
	v := p.Value()
	if v == "" {
		return time.Time{}, ErrNoProgramDateTime
	}
	return TimeParse(v)
}

// AllowCache represents EXT-X-ALLOW-CACHE, removed in protocol version 7.
type AllowCache struct{ tag }

func newAllowCache(line *TagLine) (Tag, error) {
	return &AllowCache{tag{line}}, nil
}

func (*AllowCache) Kind() Kind   { return KindAllowCache }
func (*AllowCache) Header() bool { return true }

// Allowed reports whether the value is YES.
func (a *AllowCache) Allowed() bool { return a.boolean(UnnamedKey(0)) }

// PlaylistType represents EXT-X-PLAYLIST-TYPE.
type PlaylistType struct{ tag }

func newPlaylistType(line *TagLine) (Tag, error) {
	return &PlaylistType{tag{line}}, nil
}

func (*PlaylistType) Kind() Kind   { return KindPlaylistType }
func (*PlaylistType) Header() bool { return true }

// Type returns VOD, EVENT or whatever the playlist declares.
func (p *PlaylistType) Type() string { return p.str(UnnamedKey(0)) }

// Start represents EXT-X-START.
type Start struct{ tag }

func newStart(line *TagLine) (Tag, error) {
	return &Start{tag{line}}, nil
}

func (*Start) Kind() Kind   { return KindStart }
func (*Start) Header() bool { return true }

// TimeOffset returns TIME-OFFSET in seconds. Negative values are relative
// to the end of the playlist.
func (s *Start) TimeOffset() float64 {
	f, _ := s.float("TIME-OFFSET")
	return f
}

// Precise reports PRECISE=YES.
func (s *Start) Precise() bool { return s.boolean("PRECISE") }

// SegmentMap represents EXT-X-MAP, the media initialization section.
type SegmentMap struct{ tag }

func newSegmentMap(line *TagLine) (Tag, error) {
	return &SegmentMap{tag{line}}, nil
}

func (*SegmentMap) Kind() Kind   { return KindMap }
func (*SegmentMap) Header() bool { return false }

// URI returns the initialization section URI.
func (m *SegmentMap) URI() string { return m.str("URI") }

// ByteRange returns BYTERANGE as written.
func (m *SegmentMap) ByteRange() string { return m.str("BYTERANGE") }

// DateRange represents EXT-X-DATERANGE.
type DateRange struct{ tag }

func newDateRange(line *TagLine) (Tag, error) {
	return &DateRange{tag{line}}, nil
}

func (*DateRange) Kind() Kind   { return KindDateRange }
func (*DateRange) Header() bool { return false }

// ID returns the range identifier.
func (d *DateRange) ID() string { return d.str("ID") }

// Class returns CLASS.
func (d *DateRange) Class() string { return d.str("CLASS") }

// StartDate parses START-DATE with TimeParse.
func (d *DateRange) StartDate() (time.Time, error) {
	v, err := d.optional("START-DATE")
	if err != nil {
		return time.Time{}, err
	}
	return TimeParse(v)
}

// Duration returns DURATION in seconds.
func (d *DateRange) Duration() (float64, bool) { return d.float("DURATION") }

// PlannedDuration returns PLANNED-DURATION in seconds.
func (d *DateRange) PlannedDuration() (float64, bool) { return d.float("PLANNED-DURATION") }

// Attr returns any attribute, such as a client-defined X- attribute.
func (d *DateRange) Attr(name string) string { return d.str(name) }

// SCTE35 represents EXT-X-SCTE35.
type SCTE35 struct{ tag }

func newSCTE35(line *TagLine) (Tag, error) {
	return &SCTE35{tag{line}}, nil
}

func (*SCTE35) Kind() Kind   { return KindSCTE35 }
func (*SCTE35) Header() bool { return false }

// Legacy returns a positional cue value used by older packagers.
func (s *SCTE35) Legacy() string { return s.str(UnnamedKey(0)) }

// Cue returns the base64 encoded splice info section.
func (s *SCTE35) Cue() string { return s.str("CUE") }

// ID returns the splice event identifier.
func (s *SCTE35) ID() string { return s.str("ID") }

// Duration returns DURATION in seconds.
func (s *SCTE35) Duration() (float64, bool) { return s.float("DURATION") }

// Elapsed returns ELAPSED in seconds.
func (s *SCTE35) Elapsed() (float64, bool) { return s.float("ELAPSED") }

// Time returns TIME, the splice point in seconds.
func (s *SCTE35) Time() (float64, bool) { return s.float("TIME") }

// Type returns the segmentation type id.
func (s *SCTE35) Type() (int, bool) { return s.intOK("TYPE") }

// UPID returns the segmentation UPID.
func (s *SCTE35) UPID() string { return s.str("UPID") }

// Blackout returns BLACKOUT.
func (s *SCTE35) Blackout() string { return s.str("BLACKOUT") }

// CueOut returns CUE-OUT.
func (s *SCTE35) CueOut() string { return s.str("CUE-OUT") }

// CueIn returns CUE-IN.
func (s *SCTE35) CueIn() string { return s.str("CUE-IN") }

// SegNE returns SEGNE, the segment number and expected count.
func (s *SCTE35) SegNE() string { return s.str("SEGNE") }

// Cue represents EXT-X-CUE, an ad opportunity.
type Cue struct{ tag }

func newCue(line *TagLine) (Tag, error) {
	return &Cue{tag{line}}, nil
}

func (*Cue) Kind() Kind   { return KindCue }
func (*Cue) Header() bool { return false }

// CAID returns the conditional access identifier.
func (c *Cue) CAID() string { return c.str("CAID") }

// Duration returns the break duration in seconds.
func (c *Cue) Duration() (float64, bool) { return c.float("DURATION") }

// ID returns the break identifier.
func (c *Cue) ID() (int, bool) { return c.intOK("ID") }

// Time returns the splice point in seconds.
func (c *Cue) Time() (float64, bool) { return c.float("TIME") }

// Type returns TYPE, e.g. SpliceOut.
func (c *Cue) Type() string { return c.str("TYPE") }

// CueOut represents EXT-X-CUE-OUT, the start of an ad break.
type CueOut struct{ tag }

func newCueOut(line *TagLine) (Tag, error) {
	return &CueOut{tag{line}}, nil
}

func (*CueOut) Kind() Kind   { return KindCueOut }
func (*CueOut) Header() bool { return false }

// Duration returns the break duration from DURATION=<n> or the bare
// #EXT-X-CUE-OUT:<n> form.
func (c *CueOut) Duration() (float64, bool) {
	if d, ok := c.float("DURATION"); ok {
		return d, true
	}
	return c.float(UnnamedKey(0))
}

// CueOutCont represents EXT-X-CUE-OUT-CONT, a segment inside an ad break.
type CueOutCont struct{ tag }

func newCueOutCont(line *TagLine) (Tag, error) {
	return &CueOutCont{tag{line}}, nil
}

func (*CueOutCont) Kind() Kind   { return KindCueOutCont }
func (*CueOutCont) Header() bool { return false }

// positional splits the <elapsed>/<duration> form.
func (c *CueOutCont) positional() (string, string, bool) {
	return strings.Cut(c.str(UnnamedKey(0)), "/")
}

// Duration returns the total break duration in seconds.
func (c *CueOutCont) Duration() (float64, bool) {
	if d, ok := c.float("Duration"); ok {
		return d, true
	}
	if _, d, ok := c.positional(); ok {
		return parseFloat(d)
	}
	return 0, false
}

// ElapsedTime returns the time elapsed in the break in seconds.
func (c *CueOutCont) ElapsedTime() (float64, bool) {
	if e, ok := c.float("ElapsedTime"); ok {
		return e, true
	}
	if e, _, ok := c.positional(); ok {
		return parseFloat(e)
	}
	return 0, false
}

// SCTE35 returns the splice payload carried in the break.
func (c *CueOutCont) SCTE35() string { return c.str("SCTE35") }

// Asset represents EXT-X-ASSET.
type Asset struct{ tag }

func newAsset(line *TagLine) (Tag, error) {
	return &Asset{tag{line}}, nil
}

func (*Asset) Kind() Kind   { return KindAsset }
func (*Asset) Header() bool { return false }

// CAID returns the conditional access identifier of the ad asset.
func (a *Asset) CAID() string { return a.str("CAID") }
