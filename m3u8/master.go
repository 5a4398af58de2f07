package m3u8

/*
 This file defines the master playlist view.
*/

// MasterPlaylist is a playlist of variant streams.
type MasterPlaylist struct {
	*playlist
}

// IsMaster returns true.
func (*MasterPlaylist) IsMaster() bool { return true }

// VariantStreams returns the EXT-X-STREAM-INF tags in document order.
func (p *MasterPlaylist) VariantStreams() []*StreamInf {
	return typedAs[*StreamInf](p.All(TagStreamInf))
}

// IFrameStreams returns the EXT-X-I-FRAME-STREAM-INF tags in document order.
func (p *MasterPlaylist) IFrameStreams() []*IFrameStreamInf {
	return typedAs[*IFrameStreamInf](p.All(TagIFrameStreamInf))
}

// AlternateRenditions returns the EXT-X-MEDIA tags in document order.
func (p *MasterPlaylist) AlternateRenditions() []*Media {
	return typedAs[*Media](p.All(TagMedia))
}

// SessionData returns the EXT-X-SESSION-DATA tags in document order.
func (p *MasterPlaylist) SessionData() []*SessionData {
	return typedAs[*SessionData](p.All(TagSessionData))
}

// SessionKeys returns the EXT-X-SESSION-KEY tags in document order.
func (p *MasterPlaylist) SessionKeys() []*SessionKey {
	return typedAs[*SessionKey](p.All(TagSessionKey))
}

// NearestToBitrate returns the variant stream whose bandwidth is closest
// to bitrate. On a tie the earlier variant wins. It returns nil if the
// playlist has no variant streams.
func (p *MasterPlaylist) NearestToBitrate(bitrate int) *StreamInf {
	var (
		nearest *StreamInf
		best    int
	)
	for _, v := range p.VariantStreams() {
		delta := abs(v.Bandwidth() - bitrate)
		if nearest == nil || delta < best {
			nearest, best = v, delta
		}
	}
	return nearest
}

// RemoveVariantStream deletes the variant stream and its URI line from
// the playlist. It reports whether the variant was found.
func (p *MasterPlaylist) RemoveVariantStream(v *StreamInf) bool {
	if v == nil {
		return false
	}
	return p.removeLine(v.Line())
}

// KeepOnlyNearestToBitrate removes every variant stream except the one
// nearest to bitrate and returns the survivor, or nil if there was none.
func (p *MasterPlaylist) KeepOnlyNearestToBitrate(bitrate int) *StreamInf {
	nearest := p.NearestToBitrate(bitrate)
	if nearest == nil {
		return nil
	}
	for _, v := range p.VariantStreams() {
		if v != nearest {
			p.RemoveVariantStream(v)
		}
	}
	return nearest
}

// RenditionsFor returns the alternate renditions whose GROUP-ID is
// referenced by the variant's AUDIO, VIDEO, SUBTITLES or CLOSED-CAPTIONS
// attribute.
func (p *MasterPlaylist) RenditionsFor(v *StreamInf) []*Media {
	if v == nil {
		return nil
	}
	groups := make(map[string]string, 4)
	for typ, get := range map[string]func() (string, error){
		"AUDIO":           v.Audio,
		"VIDEO":           v.Video,
		"SUBTITLES":       v.Subtitles,
		"CLOSED-CAPTIONS": v.ClosedCaptions,
	} {
		if id, err := get(); err == nil && id != "" {
			groups[typ] = id
		}
	}
	var renditions []*Media
	for _, m := range p.AlternateRenditions() {
		if id, ok := groups[m.Type()]; ok && id == m.GroupID() {
			renditions = append(renditions, m)
		}
	}
	return renditions
}

func typedAs[T Tag](tags []Tag) []T {
	out := make([]T, 0, len(tags))
	for _, t := range tags {
		if v, ok := t.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
