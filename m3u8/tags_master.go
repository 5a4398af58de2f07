package m3u8

// StreamInf represents EXT-X-STREAM-INF, a variant stream of a master playlist.
type StreamInf struct{ tag }

func newStreamInf(line *TagLine) (Tag, error) {
	if err := requireInt(line, "BANDWIDTH"); err != nil {
		return nil, err
	}
	return &StreamInf{tag{line}}, nil
}

func (*StreamInf) Kind() Kind   { return KindStreamInf }
func (*StreamInf) Header() bool { return true }

// Bandwidth returns the BANDWIDTH attribute in bits per second.
func (s *StreamInf) Bandwidth() int { return s.integer("BANDWIDTH", 0) }

// AverageBandwidth returns AVERAGE-BANDWIDTH or 0.
func (s *StreamInf) AverageBandwidth() int { return s.integer("AVERAGE-BANDWIDTH", 0) }

// ProgramID returns PROGRAM-ID, removed in protocol version 6.
func (s *StreamInf) ProgramID() (int, bool) { return s.intOK("PROGRAM-ID") }

// Codecs returns the CODECS list as written.
func (s *StreamInf) Codecs() string { return s.str("CODECS") }

// Resolution returns RESOLUTION, e.g. 1280x720.
func (s *StreamInf) Resolution() string { return s.str("RESOLUTION") }

// HDCPLevel returns HDCP-LEVEL.
func (s *StreamInf) HDCPLevel() string { return s.str("HDCP-LEVEL") }

// VideoRange returns VIDEO-RANGE.
func (s *StreamInf) VideoRange() string { return s.str("VIDEO-RANGE") }

// Name returns the non-standard NAME attribute used by some packagers.
func (s *StreamInf) Name() string { return s.str("NAME") }

// FrameRate returns FRAME-RATE or 0.
func (s *StreamInf) FrameRate() float64 {
	f, _ := s.float("FRAME-RATE")
	return f
}

// Audio returns the AUDIO rendition group ID.
func (s *StreamInf) Audio() (string, error) { return s.optional("AUDIO") }

// Video returns the VIDEO rendition group ID.
func (s *StreamInf) Video() (string, error) { return s.optional("VIDEO") }

// Subtitles returns the SUBTITLES rendition group ID.
func (s *StreamInf) Subtitles() (string, error) { return s.optional("SUBTITLES") }

// ClosedCaptions returns the CLOSED-CAPTIONS group ID or NONE.
func (s *StreamInf) ClosedCaptions() (string, error) { return s.optional("CLOSED-CAPTIONS") }

// URI returns the URI line of the media playlist.
func (s *StreamInf) URI() string { return s.line.URI }

// IFrameStreamInf represents EXT-X-I-FRAME-STREAM-INF. It shares the
// attributes of EXT-X-STREAM-INF except the rendition groups, which are
// reported as ErrUnsupported.
type IFrameStreamInf struct{ StreamInf }

func newIFrameStreamInf(line *TagLine) (Tag, error) {
	if err := requireInt(line, "BANDWIDTH"); err != nil {
		return nil, err
	}
	return &IFrameStreamInf{StreamInf{tag{line}}}, nil
}

func (*IFrameStreamInf) Kind() Kind { return KindIFrameStreamInf }

// Audio returns ErrUnsupported: I-frame variants have no rendition groups.
func (*IFrameStreamInf) Audio() (string, error) { return "", ErrUnsupported }

// Video returns ErrUnsupported.
func (*IFrameStreamInf) Video() (string, error) { return "", ErrUnsupported }

// Subtitles returns ErrUnsupported.
func (*IFrameStreamInf) Subtitles() (string, error) { return "", ErrUnsupported }

// ClosedCaptions returns ErrUnsupported.
func (*IFrameStreamInf) ClosedCaptions() (string, error) { return "", ErrUnsupported }

// URI returns the URI attribute of the I-frame playlist.
func (s *IFrameStreamInf) URI() string { return s.str("URI") }

// Media represents EXT-X-MEDIA, an alternative rendition.
type Media struct{ tag }

func newMedia(line *TagLine) (Tag, error) {
	return &Media{tag{line}}, nil
}

func (*Media) Kind() Kind   { return KindMedia }
func (*Media) Header() bool { return true }

// Type returns AUDIO, VIDEO, SUBTITLES or CLOSED-CAPTIONS.
func (m *Media) Type() string { return m.str("TYPE") }

// URI returns the rendition playlist URI, empty for closed captions.
func (m *Media) URI() string { return m.str("URI") }

// GroupID returns GROUP-ID.
func (m *Media) GroupID() string { return m.str("GROUP-ID") }

// Language returns LANGUAGE.
func (m *Media) Language() string { return m.str("LANGUAGE") }

// AssocLanguage returns ASSOC-LANGUAGE.
func (m *Media) AssocLanguage() string { return m.str("ASSOC-LANGUAGE") }

// Name returns NAME.
func (m *Media) Name() string { return m.str("NAME") }

// Default reports DEFAULT=YES.
func (m *Media) Default() bool { return m.boolean("DEFAULT") }

// AutoSelect reports AUTOSELECT=YES.
func (m *Media) AutoSelect() bool { return m.boolean("AUTOSELECT") }

// Forced reports FORCED=YES.
func (m *Media) Forced() bool { return m.boolean("FORCED") }

// InstreamID returns INSTREAM-ID.
func (m *Media) InstreamID() string { return m.str("INSTREAM-ID") }

// Characteristics returns CHARACTERISTICS.
func (m *Media) Characteristics() string { return m.str("CHARACTERISTICS") }

// Channels returns CHANNELS.
func (m *Media) Channels() string { return m.str("CHANNELS") }

// SessionData represents EXT-X-SESSION-DATA.
type SessionData struct{ tag }

func newSessionData(line *TagLine) (Tag, error) {
	return &SessionData{tag{line}}, nil
}

func (*SessionData) Kind() Kind   { return KindSessionData }
func (*SessionData) Header() bool { return true }

// DataID returns DATA-ID.
func (d *SessionData) DataID() string { return d.str("DATA-ID") }

// Value returns VALUE.
func (d *SessionData) Value() string { return d.str("VALUE") }

// URI returns the URI of a JSON data file.
func (d *SessionData) URI() string { return d.str("URI") }

// Language returns LANGUAGE.
func (d *SessionData) Language() string { return d.str("LANGUAGE") }

// SessionKey represents EXT-X-SESSION-KEY. It has the attributes of EXT-X-KEY.
type SessionKey struct{ keyAttrs }

func newSessionKey(line *TagLine) (Tag, error) {
	if err := requireMethod(line); err != nil {
		return nil, err
	}
	return &SessionKey{keyAttrs{tag{line}}}, nil
}

func (*SessionKey) Kind() Kind   { return KindSessionKey }
func (*SessionKey) Header() bool { return true }
