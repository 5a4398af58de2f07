package m3u8

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var errNotRegistered = errors.New("tag not registered")

// Constructor builds the typed representation of a tag line.
type Constructor func(line *TagLine) (Tag, error)

// Registry maps tag names to constructors.
// It is not safe for concurrent use while entries are being registered.
// Once populated it is only read, and the parser reads it without locking.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry returns a new registry holding every tag known to the package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{TagM3U, TagIndependentSegments, TagEndList, TagDiscontinuity,
		TagCueIn, TagIFramesOnly, TagGap} {
		r.Register(name, markerConstructor(name))
	}
	r.Register(TagVersion, newVersion)
	r.Register(TagStreamInf, newStreamInf)
	r.Register(TagIFrameStreamInf, newIFrameStreamInf)
	r.Register(TagMedia, newMedia)
	r.Register(TagSessionData, newSessionData)
	r.Register(TagSessionKey, newSessionKey)
	r.Register(TagInf, newExtInf)
	r.Register(TagByteRange, newByteRange)
	r.Register(TagTargetDuration, newTargetDuration)
	r.Register(TagMediaSequence, newMediaSequence)
	r.Register(TagDiscontinuitySequence, newDiscontinuitySequence)
	r.Register(TagKey, newKey)
	r.Register(TagProgramDateTime, newProgramDateTime)
	r.Register(TagAllowCache, newAllowCache)
	r.Register(TagPlaylistType, newPlaylistType)
	r.Register(TagStart, newStart)
	r.Register(TagMap, newSegmentMap)
	r.Register(TagDateRange, newDateRange)
	r.Register(TagSCTE35, newSCTE35)
	r.Register(TagCue, newCue)
	r.Register(TagCueOut, newCueOut)
	r.Register(TagCueOutCont, newCueOutCont)
	r.Register(TagAsset, newAsset)
	return r
}

// sharedRegistry is the registry used by parsers built without WithRegistry.
var sharedRegistry = sync.OnceValue(DefaultRegistry)

// Register sets the constructor for name. The last registration wins.
func (r *Registry) Register(name string, ctor Constructor) {
	r.ctors[name] = ctor
}

// Lookup returns the constructor registered for name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	ctor, ok := r.ctors[name]
	return ctor, ok
}

// Construct builds the typed tag for line. It returns false if the tag name
// is not registered or the constructor rejects the line.
func (r *Registry) Construct(line *TagLine) (Tag, bool) {
	tag, err := r.construct(line)
	return tag, err == nil
}

func (r *Registry) construct(line *TagLine) (tag Tag, err error) {
	ctor, ok := r.ctors[line.Name]
	if !ok {
		return nil, errNotRegistered
	}
	defer func() {
		if v := recover(); v != nil {
			tag, err = nil, fmt.Errorf("construct %s: panic: %v", line.Name, v)
		}
	}()
	tag, err = ctor(line)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", line.Name, err)
	}
	if tag == nil {
		return nil, fmt.Errorf("construct %s: no tag", line.Name)
	}
	return tag, nil
}

// Names returns the registered tag names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the registry that can be modified independently.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for name, ctor := range r.ctors {
		c.ctors[name] = ctor
	}
	return c
}
