package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
)

// maxPayload bounds a single message. Documents are capped well below it.
const maxPayload = 8 << 20

var errMissingContentLength = errors.New("missing Content-Length header")

// readMessage reads one base-protocol frame: MIME style headers, a blank
// line, then Content-Length bytes of JSON. Other headers are ignored.
func readMessage(r *bufio.Reader) ([]byte, error) {
	header, err := textproto.NewReader(r).ReadMIMEHeader()
	if err != nil {
		if errors.Is(err, io.EOF) && len(header) == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read headers: %w", err)
	}
	raw := header.Get("Content-Length")
	if raw == "" {
		return nil, errMissingContentLength
	}
	size, err := strconv.Atoi(raw)
	switch {
	case err != nil || size < 0:
		return nil, fmt.Errorf("bad Content-Length %q", raw)
	case size > maxPayload:
		return nil, fmt.Errorf("message of %d bytes exceeds %d", size, maxPayload)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func writeMessage(w io.Writer, payload []byte) error {
	frame := make([]byte, 0, len(payload)+32)
	frame = append(frame, "Content-Length: "...)
	frame = strconv.AppendInt(frame, int64(len(payload)), 10)
	frame = append(frame, "\r\n\r\n"...)
	frame = append(frame, payload...)
	_, err := w.Write(frame)
	return err
}
