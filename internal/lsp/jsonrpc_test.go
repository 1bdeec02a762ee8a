package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFramesRoundTrip(t *testing.T) {
	bodies := []string{
		`{"jsonrpc":"2.0","method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"text":"j 0\r\n"}}`,
	}
	var wire bytes.Buffer
	for _, b := range bodies {
		if err := writeMessage(&wire, []byte(b)); err != nil {
			t.Fatalf("writeMessage: %v", err)
		}
	}

	r := bufio.NewReader(&wire)
	for i, want := range bodies {
		got, err := readMessage(r)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if string(got) != want {
			t.Fatalf("frame %d = %s", i, got)
		}
	}
	if _, err := readMessage(r); !errors.Is(err, io.EOF) {
		t.Fatalf("after last frame: %v, want io.EOF", err)
	}
}

func TestFrameHeaders(t *testing.T) {
	ok := "content-length: 2\r\nContent-Type: application/vscode-jsonrpc; charset=utf-8\r\n\r\n{}"
	if got, err := readMessage(bufio.NewReader(strings.NewReader(ok))); err != nil || string(got) != "{}" {
		t.Fatalf("readMessage = %q, %v", got, err)
	}

	bad := []string{
		"Content-Type: application/json\r\n\r\n{}",
		"Content-Length: nope\r\n\r\n{}",
		"Content-Length: -1\r\n\r\n{}",
		"Content-Length: 99999999\r\n\r\n{}",
		"Content-Length: 10\r\n\r\n{}",
	}
	for _, raw := range bad {
		if _, err := readMessage(bufio.NewReader(strings.NewReader(raw))); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
