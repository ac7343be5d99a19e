package photo

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// dimensionProbeLimit bounds how much of the upload stream is buffered for
// dimension extraction. Image headers sit in the first bytes, so a bounded
// probe avoids holding a full photo in memory.
const dimensionProbeLimit = 512 * 1024

// probeBuffer retains the first limit bytes written through it and silently
// discards the rest. It never returns an error so it is safe as the side of
// an io.TeeReader feeding the blob store.
type probeBuffer struct {
	buf   bytes.Buffer
	limit int
}

func newProbeBuffer(limit int) *probeBuffer {
	return &probeBuffer{limit: limit}
}

func (p *probeBuffer) Write(b []byte) (int, error) {
	n := len(b)
	if remain := p.limit - p.buf.Len(); remain > 0 {
		if len(b) > remain {
			b = b[:remain]
		}
		p.buf.Write(b)
	}
	return n, nil
}

func (p *probeBuffer) Bytes() []byte {
	return p.buf.Bytes()
}

// detectDimensions extracts pixel dimensions from image content.
// Extraction is best-effort: non-image content, unknown formats and decode
// failures all yield nil dimensions.
func detectDimensions(data []byte, mimeType string) (width, height *int) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}
	w, h := cfg.Width, cfg.Height
	return &w, &h
}
