package uri

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/engine/codec"
)

func TestClassifyInlineOctetStream(t *testing.T) {
	got, err := Classify("data:application/octet-stream;base64,QQ==")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != KindInlineBytes {
		t.Fatalf("kind = %v, want inline", got.Kind)
	}
	if !bytes.Equal(got.Bytes, []byte{0x41}) {
		t.Fatalf("bytes = %v, want [0x41]", got.Bytes)
	}
	if got.MimeType != "application/octet-stream" {
		t.Fatalf("mime type = %q", got.MimeType)
	}
}

func TestClassifyInlineImages(t *testing.T) {
	for _, mime := range []string{"image/png", "image/jpeg"} {
		got, err := Classify("data:" + mime + ";base64,QUJD")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mime, err)
		}
		if got.Kind != KindInlineBytes || string(got.Bytes) != "ABC" || got.MimeType != mime {
			t.Fatalf("%s: got %+v", mime, got)
		}
	}
}

func TestClassifyExternalReference(t *testing.T) {
	for _, s := range []string{"model.bin", "textures/albedo%20map.png", "https://example.com/a.bin", ""} {
		got, err := Classify(s)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}
		if got.Kind != KindExternalReference || got.Path != s {
			t.Fatalf("%q: got %+v", s, got)
		}
		if got.Bytes != nil {
			t.Fatalf("%q: external reference must not carry bytes", s)
		}
	}
}

func TestClassifyUnsupportedDataURI(t *testing.T) {
	inputs := []string{
		"data:text/plain;base64,QQ==",
		"data:application/octet-stream,QQ==",
		"data:image/png;base64",
		"data:application/gltf-buffer;base64,QQ==",
		"data:",
	}
	for _, s := range inputs {
		_, err := Classify(s)
		if !errors.Is(err, ErrUnsupportedDataURI) {
			t.Fatalf("Classify(%q) error = %v, want ErrUnsupportedDataURI", s, err)
		}
	}
}

func TestClassifyMalformedPayload(t *testing.T) {
	_, err := Classify("data:application/octet-stream;base64,Q")
	if !errors.Is(err, codec.ErrMalformedBase64) {
		t.Fatalf("error = %v, want ErrMalformedBase64", err)
	}
}

func TestTrimForDebug(t *testing.T) {
	short := "model.bin"
	if TrimForDebug(short) != short {
		t.Fatalf("short strings must be returned unchanged")
	}
	long := "data:application/octet-stream;base64,QUJDQUJDQUJDQUJD"
	want := "data:application/octet-stream;.., total length: 53"
	if got := TrimForDebug(long); got != want {
		t.Fatalf("TrimForDebug = %q, want %q", got, want)
	}
}
