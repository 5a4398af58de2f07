package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

const master = `#EXTM3U
#EXT-X-VERSION:4
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aud",NAME="en",URI="en.m3u8"
#EXT-X-STREAM-INF:BANDWIDTH=200000,RESOLUTION=320x240,AUDIO="aud"
low.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=500000,RESOLUTION=640x480,AUDIO="aud"
mid.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1000000,RESOLUTION=1280x720,AUDIO="aud"
high.m3u8
`

const media = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:4
#EXT-X-MEDIA-SEQUENCE:10
#EXT-X-KEY:METHOD=AES-128,URI="k"
#EXTINF:4.000,
a.ts
#EXT-X-DISCONTINUITY
#EXTINF:2.500,
b.ts
#EXT-X-ENDLIST
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeFrom(t, strings.NewReader(stdin), args...)
}

func executeFrom(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlist.m3u8")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMediaSummaryFromStdin(t *testing.T) {
	out, _, err := execute(t, media, "--segments")
	require.NoError(t, err)
	require.Contains(t, out, "type: media\n")
	require.Contains(t, out, "target-duration: 4\n")
	require.Contains(t, out, "media-sequence: 10\n")
	require.Contains(t, out, "segments: 2\n")
	require.Contains(t, out, "duration: 6.500\n")
	require.Contains(t, out, "endlist: true\n")
	require.Contains(t, out, "10\t0.000\t4.000\ta.ts\tkey=AES-128\n")
	require.Contains(t, out, "11\t4.000\t2.500\tb.ts\tdiscontinuity,key=AES-128\n")
}

func TestMasterSummaryFromFile(t *testing.T) {
	path := writeTemp(t, master)
	out, _, err := execute(t, "", path, "--min-version", "--tags")
	require.NoError(t, err)
	require.Contains(t, out, "type: master\n")
	require.Contains(t, out, `variant: bandwidth=500000 resolution=640x480 codecs="" uri=mid.m3u8`)
	require.Contains(t, out, `  rendition: type=AUDIO group=aud name="en" uri=en.m3u8`)
	require.Contains(t, out, "min-version: 3 (minimal version supported by this library)\n")
	require.Contains(t, out, "EXT-X-STREAM-INF\tBANDWIDTH=200000 RESOLUTION=320x240 AUDIO=aud\n")
}

func TestKeepNearestBitrate(t *testing.T) {
	path := writeTemp(t, master)
	out, _, err := execute(t, "", "--bitrate", "600000", path)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"#EXTM3U",
		"#EXT-X-VERSION:4",
		`#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aud",NAME="en",URI="en.m3u8"`,
		`#EXT-X-STREAM-INF:BANDWIDTH=500000,RESOLUTION=640x480,AUDIO="aud"`,
		"mid.m3u8",
		"",
	}, "\n"), out)
}

func TestBitrateOnMediaPlaylist(t *testing.T) {
	_, _, err := execute(t, media, "--bitrate", "1", "-")
	require.Error(t, err)
	require.Contains(t, err.Error(), "needs a master playlist")
}

func TestVerboseLogsSkippedInput(t *testing.T) {
	_, stderr, err := execute(t, "orphan.ts\n"+media, "--verbose")
	require.NoError(t, err)
	require.Contains(t, stderr, "dropping URI line without a preceding tag")
	require.Contains(t, stderr, "orphan.ts")

	_, stderr, err = execute(t, "orphan.ts\n"+media)
	require.NoError(t, err)
	require.Empty(t, stderr)
}

func TestMissingFile(t *testing.T) {
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "missing.m3u8"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open playlist")
}

func TestBitrateReportsTruncatedInput(t *testing.T) {
	readErr := errors.New("connection reset")
	in := io.MultiReader(strings.NewReader(master), iotest.ErrReader(readErr))
	out, _, err := executeFrom(t, in, "--bitrate", "600000")
	require.ErrorIs(t, err, readErr)
	require.Contains(t, out, "mid.m3u8\n")
	require.NotContains(t, out, "high.m3u8")
}
