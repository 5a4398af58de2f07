/*
Package m3u8 parses HLS m3u8 playlists into a typed, queryable model.

HLS (HTTP Live Streaming) is described in [IETF RFC8216][rfc8216] and its
continuing series of Internet Drafts [rfc8216bis].

## Structure and design of the code

Decoding happens in two stages. The first stage is a single pass over the
lines of the manifest. Every line starting with #EXT becomes a TagLine
holding the tag name and its attribute list, and every URI line is attached
to the tag line before it. A manifest is a master playlist as soon as an
EXT-X-STREAM-INF tag is seen, otherwise it is a media playlist.

The second stage is lazy. Typed tags such as *StreamInf or *Key are only
built, by the constructors of a Registry, when a caller asks for them, and
they are cached for the lifetime of the playlist. The accessors of a typed
tag read the attributes of the backing TagLine.

For media playlists, Segments walks the tags once and attaches to each
EXTINF the context accumulated from the tags before it: the keys and map in
effect, the media and discontinuity sequence numbers, the program date time
anchor, ad break cues and the tags seen since the previous segment.

Parsing is lenient. Unknown tags, malformed attribute lists and values that
do not parse never stop decoding; they show up as *Unknown tags, missing
typed tags or documented default values. Pass a zerolog logger with
WithLogger to see what was skipped.

Decoding a media playlist:

	p, listType := m3u8.DecodeString(manifest)
	if listType == m3u8.MEDIA {
		for _, s := range p.(*m3u8.MediaPlaylist).Segments() {
			fmt.Println(s.MediaSequence, s.URI, s.Duration)
		}
	}

Selecting a variant of a master playlist:

	f, _ := os.Open("sample-playlists/master.m3u8")
	p, _, _ := m3u8.DecodeFrom(f)
	variant := p.(*m3u8.MasterPlaylist).KeepOnlyNearestToBitrate(600000)
	fmt.Println(variant.URI(), p.String())

[rfc8216]: https:    //tools.ietf.org/html/rfc8216
[rfc8216bis]: https: //tools.ietf.org/html/draft-pantos-rfc8216bis
*/
package m3u8
