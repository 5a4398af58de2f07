package m3u8

/*
 This file defines the media playlist and the segment accumulation engine.
*/

import "math"

// MediaPlaylist is a playlist of media segments.
type MediaPlaylist struct {
	*playlist
}

// IsMaster returns false.
func (*MediaPlaylist) IsMaster() bool { return false }

// Segments returns the segments defined by EXTINF tags in document order.
func (p *MediaPlaylist) Segments() []*Segment {
	return p.SegmentsFor(TagInf)
}

// ByteRangeSegments returns the segments defined by EXT-X-BYTERANGE tags.
// Their durations and titles come from the EXTINF preceding each range.
func (p *MediaPlaylist) ByteRangeSegments() []*Segment {
	return p.SegmentsFor(TagByteRange)
}

// SegmentsFor returns one segment per tag named name, carrying the
// context accumulated from the tags before it. The result is computed once
// per name and shared; it must not be modified.
func (p *MediaPlaylist) SegmentsFor(name string) []*Segment {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.segments.get(name, func() []*Segment {
		return p.accumulate(name)
	})
}

// TargetDuration returns the EXT-X-TARGETDURATION tag, or nil.
func (p *MediaPlaylist) TargetDuration() *TargetDuration {
	t, _ := p.One(TagTargetDuration).(*TargetDuration)
	return t
}

// MediaSequence returns the EXT-X-MEDIA-SEQUENCE tag, or nil.
func (p *MediaPlaylist) MediaSequence() *MediaSequence {
	t, _ := p.One(TagMediaSequence).(*MediaSequence)
	return t
}

// DiscontinuitySequence returns the EXT-X-DISCONTINUITY-SEQUENCE tag, or nil.
func (p *MediaPlaylist) DiscontinuitySequence() *DiscontinuitySequence {
	t, _ := p.One(TagDiscontinuitySequence).(*DiscontinuitySequence)
	return t
}

// AllowCache returns the EXT-X-ALLOW-CACHE tag, or nil.
func (p *MediaPlaylist) AllowCache() *AllowCache {
	t, _ := p.One(TagAllowCache).(*AllowCache)
	return t
}

// PlaylistType returns the EXT-X-PLAYLIST-TYPE tag, or nil.
func (p *MediaPlaylist) PlaylistType() *PlaylistType {
	t, _ := p.One(TagPlaylistType).(*PlaylistType)
	return t
}

// Start returns the EXT-X-START tag, or nil.
func (p *MediaPlaylist) Start() *Start {
	t, _ := p.One(TagStart).(*Start)
	return t
}

// IFramesOnly reports whether the playlist carries EXT-X-I-FRAMES-ONLY.
func (p *MediaPlaylist) IFramesOnly() bool {
	return p.One(TagIFramesOnly) != nil
}

// EndList reports whether the playlist carries EXT-X-ENDLIST.
func (p *MediaPlaylist) EndList() bool {
	return p.One(TagEndList) != nil
}

// TotalDuration returns the sum of the EXTINF segment durations in seconds.
func (p *MediaPlaylist) TotalDuration() float64 {
	var total float64
	for _, s := range p.Segments() {
		total += s.Duration
	}
	return total
}

// accumulator is the state carried from tag to tag while segments are built.
type accumulator struct {
	// persistent across segments
	mediaSequence         int
	discontinuitySequence int
	keys                  []*Key
	keysOpen              bool // a key was seen since the last segment
	segmentMap            *SegmentMap
	clock                 int64 // ms since the epoch, or since the start when no anchor was seen
	start                 float64
	endList               bool
	lastInf               *ExtInf

	// reset after each segment
	discontinuity bool
	cueIn         bool
	pdt           string
	pdtUpdated    bool
	caid          string
	breakDuration *float64
	breakElapsed  *float64
	breakID       *int
	breakPTS      *float64
	scte35        *SCTE35
	pending       []Tag
}

func newAccumulator() *accumulator {
	return &accumulator{mediaSequence: 1}
}

// accumulate walks the tag lines once in document order. Caller holds p.mu.
func (p *MediaPlaylist) accumulate(target string) []*Segment {
	var segments []*Segment
	acc := newAccumulator()
	for _, line := range p.lines {
		t := p.tagOf(line)
		if line.Name == target {
			segments = append(segments, acc.emit(line, t))
			continue
		}
		if t == nil {
			continue
		}
		p.apply(acc, t)
	}
	return segments
}

// apply folds a non-segment tag into the accumulator.
func (p *MediaPlaylist) apply(acc *accumulator, t Tag) {
	switch v := t.(type) {
	case *Marker:
		switch v.Kind() {
		case KindDiscontinuity:
			acc.discontinuity = true
			return
		case KindCueIn:
			acc.cueIn = true
			return
		case KindEndList:
			acc.endList = true
			return
		}
	case *MediaSequence:
		acc.mediaSequence = v.SequenceNumber()
	case *DiscontinuitySequence:
		acc.discontinuitySequence = v.SequenceNumber()
	case *Key:
		if !acc.keysOpen {
			acc.keys = nil
			acc.keysOpen = true
		}
		acc.keys = append(acc.keys, v)
	case *SegmentMap:
		acc.segmentMap = v
	case *ProgramDateTime:
		acc.pdt = v.Value()
		acc.pdtUpdated = true
		ts, err := v.Time()
		if err != nil {
			p.logger.Debug().Err(err).Str("value", acc.pdt).Msg("unparsable program date time")
			acc.clock = 0
		} else {
			acc.clock = ts.UnixMilli()
		}
	case *Asset:
		acc.caid = v.CAID()
	case *Cue:
		acc.caid = v.CAID()
		acc.breakDuration = floatPtr(v.Duration())
		acc.breakID = intPtr(v.ID())
		acc.breakPTS = floatPtr(v.Time())
	case *CueOut:
		acc.breakDuration = floatPtr(v.Duration())
	case *CueOutCont:
		acc.breakDuration = floatPtr(v.Duration())
		acc.breakElapsed = floatPtr(v.ElapsedTime())
	case *SCTE35:
		acc.scte35 = v
	case *ExtInf:
		acc.lastInf = v
	}
	if !t.Header() {
		acc.pending = append(acc.pending, t)
	}
}

// emit snapshots the accumulator onto a new segment and advances the clocks.
func (acc *accumulator) emit(line *TagLine, t Tag) *Segment {
	inf, ok := t.(*ExtInf)
	if !ok {
		inf = acc.lastInf
	}
	s := &Segment{
		Tag:                    t,
		URI:                    line.URI,
		MediaSequence:          acc.mediaSequence,
		DiscontinuitySequence:  acc.discontinuitySequence,
		Discontinuity:          acc.discontinuity,
		CueIn:                  acc.cueIn,
		Keys:                   acc.keys,
		Map:                    acc.segmentMap,
		ProgramDateTime:        acc.pdt,
		ProgramDateTimeUpdated: acc.pdtUpdated,
		AbsoluteTime:           acc.clock,
		StartTime:              acc.start,
		CAID:                   acc.caid,
		BreakDuration:          acc.breakDuration,
		BreakElapsed:           acc.breakElapsed,
		BreakID:                acc.breakID,
		BreakPTS:               acc.breakPTS,
		SCTE35:                 acc.scte35,
		EndList:                acc.endList,
		Tags:                   acc.pending,
	}
	if inf != nil {
		s.Duration = inf.Duration()
		s.Title = inf.Title()
	}

	acc.mediaSequence++
	acc.clock += int64(math.Round(s.Duration * 1000))
	acc.start += s.Duration
	acc.keysOpen = false

	acc.discontinuity = false
	acc.cueIn = false
	acc.pdt = ""
	acc.pdtUpdated = false
	acc.caid = ""
	acc.breakDuration = nil
	acc.breakElapsed = nil
	acc.breakID = nil
	acc.breakPTS = nil
	acc.scte35 = nil
	acc.pending = nil
	return s
}

func floatPtr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func intPtr(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}
