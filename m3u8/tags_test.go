package m3u8

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func construct(t *testing.T, line string) Tag {
	t.Helper()
	tag, ok := DefaultRegistry().Construct(ParseTagLine(line))
	if !ok {
		t.Fatalf("no typed tag for %q", line)
	}
	return tag
}

func TestKindString(t *testing.T) {
	is := is.New(t)
	is.Equal(KindStreamInf.String(), "EXT-X-STREAM-INF") // kind must print as tag name
	is.Equal(KindUnknown.String(), "unknown")            // unknown kind
	is.Equal(Kind(200).String(), "Kind(200)")            // out of range kind
}

func TestBooleanAttributes(t *testing.T) {
	cases := []struct {
		value    string
		expected bool
	}{
		{"YES", true},
		{"yes", true},
		{"Yes", true},
		{"NO", false},
		{"TRUE", false},
		{"", false},
	}
	for _, c := range cases {
		t.Run(c.value, func(t *testing.T) {
			is := is.New(t)
			m := construct(t, "#EXT-X-MEDIA:TYPE=AUDIO,DEFAULT="+c.value).(*Media)
			is.Equal(m.Default(), c.expected) // DEFAULT must follow the YES rule
		})
	}
}

func TestNumericDefaults(t *testing.T) {
	is := is.New(t)
	is.Equal(construct(t, "#EXT-X-TARGETDURATION").(*TargetDuration).Duration(), 6)                      // absent target duration
	is.Equal(construct(t, "#EXT-X-TARGETDURATION:abc").(*TargetDuration).Duration(), 6)                  // unparsable target duration
	is.Equal(construct(t, "#EXT-X-TARGETDURATION:10").(*TargetDuration).Duration(), 10)                  // target duration
	is.Equal(construct(t, "#EXT-X-MEDIA-SEQUENCE").(*MediaSequence).SequenceNumber(), 1)                 // absent media sequence
	is.Equal(construct(t, "#EXT-X-MEDIA-SEQUENCE:x").(*MediaSequence).SequenceNumber(), 1)               // unparsable media sequence
	is.Equal(construct(t, "#EXT-X-MEDIA-SEQUENCE:0").(*MediaSequence).SequenceNumber(), 0)               // zero media sequence
	is.Equal(construct(t, "#EXT-X-DISCONTINUITY-SEQUENCE").(*DiscontinuitySequence).SequenceNumber(), 0) // absent discontinuity sequence
	is.Equal(construct(t, "#EXTINF:abc,").(*ExtInf).Duration(), 0.0)                                     // unparsable duration
}

func TestStreamInf(t *testing.T) {
	is := is.New(t)
	line := ParseTagLine(`#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=963000,AVERAGE-BANDWIDTH=900000,` +
		`CODECS="avc1.4d001f,mp4a.40.2",RESOLUTION=448x336,FRAME-RATE=29.970,AUDIO="Audio1",CLOSED-CAPTIONS=NONE`)
	line.attachURI("02.m3u8")
	tag, ok := DefaultRegistry().Construct(line)
	is.True(ok) // must construct
	s := tag.(*StreamInf)
	is.Equal(s.Bandwidth(), 963000)               // bandwidth
	is.Equal(s.AverageBandwidth(), 900000)        // average bandwidth
	is.Equal(s.Codecs(), "avc1.4d001f,mp4a.40.2") // codecs keep the comma
	is.Equal(s.Resolution(), "448x336")           // resolution
	is.Equal(s.FrameRate(), 29.97)                // frame rate
	is.Equal(s.URI(), "02.m3u8")                  // URI comes from the URI line
	is.True(s.Header())                           // stream inf is a header tag

	id, ok := s.ProgramID()
	is.True(ok)     // program id is present
	is.Equal(id, 1) // program id

	audio, err := s.Audio()
	is.NoErr(err)             // audio group is present
	is.Equal(audio, "Audio1") // audio group
	cc, err := s.ClosedCaptions()
	is.NoErr(err)        // closed captions are present
	is.Equal(cc, "NONE") // closed captions
	_, err = s.Video()
	is.True(errors.Is(err, ErrAttributeAbsent)) // absent video group
}

func TestIFrameStreamInf(t *testing.T) {
	is := is.New(t)
	s := construct(t, `#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=86000,CODECS="avc1.4d001f",URI="iframe.m3u8"`).(*IFrameStreamInf)
	is.Equal(s.Kind(), KindIFrameStreamInf) // kind
	is.Equal(s.Bandwidth(), 86000)          // shared accessors
	is.Equal(s.URI(), "iframe.m3u8")        // URI comes from the attribute

	for _, get := range []func() (string, error){s.Audio, s.Video, s.Subtitles, s.ClosedCaptions} {
		_, err := get()
		is.True(errors.Is(err, ErrUnsupported))      // group attributes do not apply
		is.True(!errors.Is(err, ErrAttributeAbsent)) // unsupported is not absent
	}
}

func TestKey(t *testing.T) {
	is := is.New(t)
	k := construct(t, `#EXT-X-KEY:METHOD=AES-128,URI="https://secure.domain.com",IV=0xb059217aa2649ce170b734`).(*Key)
	is.Equal(k.Method(), "AES-128")                // method
	is.Equal(k.URI(), "https://secure.domain.com") // URI
	is.Equal(k.IV(), "0xb059217aa2649ce170b734")   // IV
	is.Equal(k.KeyFormat(), "")                    // absent key format
	is.True(!k.Header())                           // key applies to segments

	sk := construct(t, `#EXT-X-SESSION-KEY:METHOD=SAMPLE-AES,URI="skd://k",KEYFORMAT="com.apple.streamingkeydelivery"`).(*SessionKey)
	is.Equal(sk.Method(), "SAMPLE-AES")                        // session key method
	is.Equal(sk.KeyFormat(), "com.apple.streamingkeydelivery") // session key format
	is.True(sk.Header())                                       // session key is a header tag
}

func TestByteRange(t *testing.T) {
	is := is.New(t)
	b := construct(t, "#EXT-X-BYTERANGE:86920@100").(*ByteRange)
	is.Equal(b.Length(), int64(86920)) // length
	off, ok := b.Offset()
	is.True(ok)               // offset is present
	is.Equal(off, int64(100)) // offset

	b = construct(t, "#EXT-X-BYTERANGE:20000").(*ByteRange)
	is.Equal(b.Length(), int64(20000)) // length
	_, ok = b.Offset()
	is.True(!ok) // offset is omitted
}

func TestProgramDateTime(t *testing.T) {
	is := is.New(t)
	p := construct(t, "#EXT-X-PROGRAM-DATE-TIME:2010-02-19T14:54:23.031+08:00").(*ProgramDateTime)
	is.Equal(p.Value(), "2010-02-19T14:54:23.031+08:00") // value is kept verbatim
	ts, err := p.Time()
	is.NoErr(err)                                  // must parse
	is.Equal(ts.UnixMilli(), int64(1266562463031)) // epoch milliseconds

	_, err = construct(t, "#EXT-X-PROGRAM-DATE-TIME").(*ProgramDateTime).Time()
	is.True(errors.Is(err, ErrNoProgramDateTime)) // empty value
}

func TestCueTags(t *testing.T) {
	is := is.New(t)
	c := construct(t, `#EXT-X-CUE:CAID="0x2F",DURATION=30,ID=42,TIME=1230.5,TYPE="SpliceOut"`).(*Cue)
	is.Equal(c.CAID(), "0x2F") // CAID
	d, ok := c.Duration()
	is.True(ok)       // duration is present
	is.Equal(d, 30.0) // duration
	id, ok := c.ID()
	is.True(ok)      // id is present
	is.Equal(id, 42) // id
	pts, _ := c.Time()
	is.Equal(pts, 1230.5)           // time
	is.Equal(c.Type(), "SpliceOut") // type

	d, ok = construct(t, "#EXT-X-CUE-OUT:15").(*CueOut).Duration()
	is.True(ok)       // positional duration
	is.Equal(d, 15.0) // positional duration value
	d, _ = construct(t, "#EXT-X-CUE-OUT:DURATION=20").(*CueOut).Duration()
	is.Equal(d, 20.0) // named duration value
	_, ok = construct(t, "#EXT-X-CUE-OUT").(*CueOut).Duration()
	is.True(!ok) // no duration

	cont := construct(t, "#EXT-X-CUE-OUT-CONT:ElapsedTime=6,Duration=30,SCTE35=/DAl").(*CueOutCont)
	e, _ := cont.ElapsedTime()
	is.Equal(e, 6.0) // named elapsed time
	d, _ = cont.Duration()
	is.Equal(d, 30.0)               // named duration
	is.Equal(cont.SCTE35(), "/DAl") // scte35 payload

	cont = construct(t, "#EXT-X-CUE-OUT-CONT:12.5/30").(*CueOutCont)
	e, _ = cont.ElapsedTime()
	is.Equal(e, 12.5) // positional elapsed time
	d, _ = cont.Duration()
	is.Equal(d, 30.0) // positional duration

	is.Equal(construct(t, "#EXT-X-ASSET:CAID=0x01").(*Asset).CAID(), "0x01") // asset CAID
}

func TestSCTE35(t *testing.T) {
	is := is.New(t)
	s := construct(t, `#EXT-X-SCTE35:CUE="/DAgAAAAAAAAAP/wDwUAAF0bf0/+AAAAAAAAAAAAAOYi0Es=",ID="1",DURATION=30,TYPE=52`).(*SCTE35)
	is.Equal(s.Cue(), "/DAgAAAAAAAAAP/wDwUAAF0bf0/+AAAAAAAAAAAAAOYi0Es=") // base64 cue keeps '='
	is.Equal(s.ID(), "1")                                                 // id
	d, _ := s.Duration()
	is.Equal(d, 30.0) // duration
	typ, ok := s.Type()
	is.True(ok)       // type is present
	is.Equal(typ, 52) // type
	_, ok = s.Elapsed()
	is.True(!ok) // no elapsed
}

func TestMediaPlaylistHeaderTags(t *testing.T) {
	is := is.New(t)
	is.True(construct(t, "#EXT-X-ALLOW-CACHE:YES").(*AllowCache).Allowed())          // allow cache
	is.Equal(construct(t, "#EXT-X-PLAYLIST-TYPE:VOD").(*PlaylistType).Type(), "VOD") // playlist type
	start := construct(t, "#EXT-X-START:TIME-OFFSET=-12.5,PRECISE=YES").(*Start)
	is.Equal(start.TimeOffset(), -12.5) // negative offset
	is.True(start.Precise())            // precise
	m := construct(t, `#EXT-X-MAP:URI="init.mp4",BYTERANGE="720@0"`).(*SegmentMap)
	is.Equal(m.URI(), "init.mp4")    // map URI
	is.Equal(m.ByteRange(), "720@0") // map byte range
}

func TestDateRangeAndSessionData(t *testing.T) {
	is := is.New(t)
	dr := construct(t, `#EXT-X-DATERANGE:ID="ad1",CLASS="com.example",START-DATE="2010-02-19T06:54:23.031Z",`+
		`PLANNED-DURATION=30,X-COM-EXAMPLE="value"`).(*DateRange)
	is.Equal(dr.ID(), "ad1")                    // id
	is.Equal(dr.Class(), "com.example")         // class
	is.Equal(dr.Attr("X-COM-EXAMPLE"), "value") // client attribute
	start, err := dr.StartDate()
	is.NoErr(err)                                     // start date must parse
	is.Equal(start.UnixMilli(), int64(1266562463031)) // start date
	_, ok := dr.Duration()
	is.True(!ok) // no duration
	pd, _ := dr.PlannedDuration()
	is.Equal(pd, 30.0) // planned duration

	sd := construct(t, `#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="Title",LANGUAGE="en"`).(*SessionData)
	is.Equal(sd.DataID(), "com.example.title") // data id
	is.Equal(sd.Value(), "Title")              // value
	is.Equal(sd.Language(), "en")              // language
}

func TestMarkers(t *testing.T) {
	cases := []struct {
		line   string
		kind   Kind
		header bool
	}{
		{"#EXTM3U", KindM3U, true},
		{"#EXT-X-INDEPENDENT-SEGMENTS", KindIndependentSegments, true},
		{"#EXT-X-I-FRAMES-ONLY", KindIFramesOnly, true},
		{"#EXT-X-DISCONTINUITY", KindDiscontinuity, false},
		{"#EXT-X-CUE-IN", KindCueIn, false},
		{"#EXT-X-GAP", KindGap, false},
		{"#EXT-X-ENDLIST", KindEndList, false},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			is := is.New(t)
			m := construct(t, c.line)
			is.Equal(m.Kind(), c.kind)     // kind
			is.Equal(m.Header(), c.header) // header classification
		})
	}
}
