package m3u8

import (
	"strings"
)

func updateMin(ver *uint8, reason *string, newVer uint8, newReason string) {
	if newVer <= *ver { // only update if higher version
		return
	}
	*ver = newVer
	*reason = newReason
}

// CalcMinVersion returns the minimal version of the HLS protocol that is
// required to support the playlist according to the [HLS Prococcol Version Compatibility].
// The reason is a human-readable string explaining why the version is required.
func (p *MasterPlaylist) CalcMinVersion() (ver uint8, reason string) {
	ver = minVer
	reason = "minimal version supported by this library"

	// A Multivariant Playlist MUST indicate an EXT-X-VERSION of 7 or higher
	// if it contains:
	// *  "SERVICE" values for the INSTREAM-ID attribute of the EXT-X-MEDIA
	for _, alt := range p.AlternateRenditions() {
		if strings.HasPrefix(alt.InstreamID(), "SERVICE") {
			updateMin(&ver, &reason, 7, "SERVICE value for the INSTREAM-ID attribute of the EXT-X-MEDIA")
			break
		}
	}

	// A Playlist MUST indicate an EXT-X-VERSION of 12 or higher if it contains:
	// 	*  An attribute whose name starts with "REQ-".
	// This is only defined for EXT-X-STREAM-INF and EXT-X-I-FRAME-STREAM-INF tags
	// in the current version of the protocol.
	var streams []Tag
	streams = append(streams, p.All(TagStreamInf)...)
	streams = append(streams, p.All(TagIFrameStreamInf)...)
	for _, s := range streams {
		if hasReqAttribute(s.Line().Attrs) {
			updateMin(&ver, &reason, 12, "REQ- attribute")
			break
		}
	}

	// 	A Playlist MUST indicate an EXT-X-VERSION of 13 or higher if it
	// contains:
	// * An EXT-X-MEDIA tag with INSTREAM-ID attribute for non CLOSED-
	// CAPTIONS TYPE.
	for _, alt := range p.AlternateRenditions() {
		if (alt.Type() != "CLOSED-CAPTIONS") && (alt.InstreamID() != "") {
			updateMin(&ver, &reason, 13,
				"EXT-X-MEDIA tag with INSTREAM-ID attribute for non CLOSED-CAPTIONS TYPE")
			break
		}
	}

	return ver, reason
}

// CalcMinVersion returns the minimal version of the HLS protocol that is
// required to support the playlist according to the [HLS Prococcol Version Compatibility].
// The reason is a human-readable string explaining why the version is required.
func (p *MediaPlaylist) CalcMinVersion() (ver uint8, reason string) {
	ver = minVer
	reason = "minimal version supported by this library"

	// A Media Playlist MUST indicate an EXT-X-VERSION of 4 or higher if it contains:
	// * The EXT-X-BYTERANGE tag.
	// * The EXT-X-I-FRAMES-ONLY tag.
	if len(p.All(TagByteRange)) > 0 {
		updateMin(&ver, &reason, 4, "EXT-X-BYTERANGE tag")
	}
	iframe := p.IFramesOnly()
	if iframe {
		updateMin(&ver, &reason, 4, "EXT-X-I-FRAMES-ONLY tag")
	}

	for _, t := range p.All(TagKey) {
		key := t.(*Key)
		if key.Method() == "SAMPLE-AES" || key.KeyFormat() != "" || key.KeyFormatVersions() != "" {
			updateMin(&ver, &reason, 5,
				"EXT-X-KEY tag with a METHOD of SAMPLE-AES, KEYFORMAT or KEYFORMATVERSIONS attributes")
			break
		}
	}

	if len(p.All(TagMap)) > 0 {
		updateMin(&ver, &reason, 5, "EXT-X-MAP tag")
		if !iframe {
			updateMin(&ver, &reason, 6,
				"EXT-X-MAP tag in a Media Playlist that does not contain EXT-X-I-FRAMES-ONLY")
		}
	}

	return ver, reason
}

func hasReqAttribute(attrs Attributes) bool {
	for _, key := range attrs.Keys() {
		if strings.HasPrefix(key, "REQ-") {
			return true
		}
	}
	return false
}

// [HLS Prococcol Version Compatibility]: https://tools.ietf.org/html/draft-pantos-hls-rfc8216bis-16#section-8

/*
From https: //tools.ietf.org/html/draft-pantos-hls-rfc8216bis-16

This library only supports level 3 and higher, so we don't check
for level 1 and 2 compatibility.

8.  Protocol Version Compatibility

   A Media Playlist MUST indicate an EXT-X-VERSION of 4 or higher if it
   contains:

   *  The EXT-X-BYTERANGE tag.

   *  The EXT-X-I-FRAMES-ONLY tag.

   A Media Playlist MUST indicate an EXT-X-VERSION of 5 or higher if it
   contains:

   *  An EXT-X-KEY tag with a METHOD of SAMPLE-AES.

   *  The KEYFORMAT and KEYFORMATVERSIONS attributes of the EXT-X-KEY
      tag.

   *  The EXT-X-MAP tag.

   A Media Playlist MUST indicate an EXT-X-VERSION of 6 or higher if it
   contains:

   *  The EXT-X-MAP tag in a Media Playlist that does not contain EXT-
      X-I-FRAMES-ONLY.

   A Multivariant Playlist MUST indicate an EXT-X-VERSION of 7 or higher
   if it contains:

   *  "SERVICE" values for the INSTREAM-ID attribute of the EXT-X-MEDIA
      tag.

   A Playlist MUST indicate an EXT-X-VERSION of 12 or higher if it
   contains:

   *  An attribute whose name starts with "REQ-".

   Variable substitution (8), EXT-X-SKIP (9, 10) and EXT-X-DEFINE with
   QUERYPARAM (11) have no typed tags here and are not checked.
*/
