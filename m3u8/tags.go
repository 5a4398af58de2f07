package m3u8

/*
 This file defines the typed tag model shared by master and media playlists.
*/

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag is the typed, read-only view of a tag line. Accessors are computed
// from the backing TagLine on every call. The set of implementations is
// closed; switch on the concrete type or on Kind.
type Tag interface {
	// Kind identifies the tag.
	Kind() Kind
	// Line returns the backing tag line.
	Line() *TagLine
	// Header reports whether the tag applies to the whole playlist rather
	// than to the segment that follows it.
	Header() bool

	isTag()
}

// Kind enumerates the known tags.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindM3U
	KindVersion
	KindIndependentSegments
	KindStreamInf
	KindIFrameStreamInf
	KindMedia
	KindSessionData
	KindSessionKey
	KindInf
	KindByteRange
	KindTargetDuration
	KindMediaSequence
	KindDiscontinuitySequence
	KindDiscontinuity
	KindKey
	KindProgramDateTime
	KindAllowCache
	KindPlaylistType
	KindIFramesOnly
	KindStart
	KindMap
	KindGap
	KindDateRange
	KindSCTE35
	KindCue
	KindCueOut
	KindCueOutCont
	KindCueIn
	KindAsset
	KindEndList
)

var kindNames = [...]string{
	KindUnknown:               "unknown",
	KindM3U:                   TagM3U,
	KindVersion:               TagVersion,
	KindIndependentSegments:   TagIndependentSegments,
	KindStreamInf:             TagStreamInf,
	KindIFrameStreamInf:       TagIFrameStreamInf,
	KindMedia:                 TagMedia,
	KindSessionData:           TagSessionData,
	KindSessionKey:            TagSessionKey,
	KindInf:                   TagInf,
	KindByteRange:             TagByteRange,
	KindTargetDuration:        TagTargetDuration,
	KindMediaSequence:         TagMediaSequence,
	KindDiscontinuitySequence: TagDiscontinuitySequence,
	KindDiscontinuity:         TagDiscontinuity,
	KindKey:                   TagKey,
	KindProgramDateTime:       TagProgramDateTime,
	KindAllowCache:            TagAllowCache,
	KindPlaylistType:          TagPlaylistType,
	KindIFramesOnly:           TagIFramesOnly,
	KindStart:                 TagStart,
	KindMap:                   TagMap,
	KindGap:                   TagGap,
	KindDateRange:             TagDateRange,
	KindSCTE35:                TagSCTE35,
	KindCue:                   TagCue,
	KindCueOut:                TagCueOut,
	KindCueOutCont:            TagCueOutCont,
	KindCueIn:                 TagCueIn,
	KindAsset:                 TagAsset,
	KindEndList:               TagEndList,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// tag is embedded by every Tag implementation.
type tag struct {
	line *TagLine
}

func (t tag) Line() *TagLine { return t.line }

func (tag) isTag() {}

func (t tag) str(key string) string {
	return t.line.Attrs.Value(key)
}

func (t tag) optional(key string) (string, error) {
	v, ok := t.line.Attrs.Get(key)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrAttributeAbsent)
	}
	return v, nil
}

func (t tag) integer(key string, def int) int {
	v, ok := t.intOK(key)
	if !ok {
		return def
	}
	return v
}

func (t tag) intOK(key string) (int, bool) {
	v, ok := t.line.Attrs.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (t tag) float(key string) (float64, bool) {
	v, ok := t.line.Attrs.Get(key)
	if !ok {
		return 0, false
	}
	return parseFloat(v)
}

func (t tag) boolean(key string) bool {
	return yesOrNo(t.line.Attrs.Value(key))
}

func parseFloat(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// yesOrNo decodes an enumerated YES/NO attribute. Anything but YES,
// in any case, is false.
func yesOrNo(v string) bool {
	return strings.EqualFold(v, "YES")
}

// requireInt checks that the attribute key holds an integer.
func requireInt(line *TagLine, key string) error {
	v, ok := line.Attrs.Get(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrAttributeAbsent)
	}
	if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// Unknown is the typed view of a tag line whose name is not registered.
type Unknown struct{ tag }

func newUnknown(line *TagLine) *Unknown { return &Unknown{tag{line}} }

func (*Unknown) Kind() Kind   { return KindUnknown }
func (*Unknown) Header() bool { return false }

// Name returns the tag name.
func (u *Unknown) Name() string { return u.line.Name }

// Marker is a tag without attributes, such as EXT-X-DISCONTINUITY.
type Marker struct {
	tag
	kind Kind
}

var markerKinds = map[string]Kind{
	TagM3U:                 KindM3U,
	TagIndependentSegments: KindIndependentSegments,
	TagEndList:             KindEndList,
	TagDiscontinuity:       KindDiscontinuity,
	TagCueIn:               KindCueIn,
	TagIFramesOnly:         KindIFramesOnly,
	TagGap:                 KindGap,
}

func markerConstructor(name string) Constructor {
	kind := markerKinds[name]
	return func(line *TagLine) (Tag, error) {
		return &Marker{tag: tag{line}, kind: kind}, nil
	}
}

func (m *Marker) Kind() Kind { return m.kind }

func (m *Marker) Header() bool {
	switch m.kind {
	case KindM3U, KindIndependentSegments, KindIFramesOnly:
		return true
	}
	return false
}

// Version represents EXT-X-VERSION.
type Version struct{ tag }

func newVersion(line *TagLine) (Tag, error) {
	if err := requireInt(line, UnnamedKey(0)); err != nil {
		return nil, err
	}
	return &Version{tag{line}}, nil
}

func (*Version) Kind() Kind   { return KindVersion }
func (*Version) Header() bool { return true }

// Number returns the protocol version.
func (v *Version) Number() int {
	return v.integer(UnnamedKey(0), 0)
}
