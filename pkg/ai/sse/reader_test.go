package sse_test

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bitop-dev/debate/pkg/ai/sse"
)

func drain(r *sse.Reader) []string {
	var out []string
	for {
		data, err := r.Next()
		if err != nil {
			return out
		}
		out = append(out, data)
	}
}

func TestReader_SingleEvent(t *testing.T) {
	got := drain(sse.NewReader(strings.NewReader("data: hello\n\n")))
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v, want [hello]", got)
	}
}

func TestReader_MultipleEvents(t *testing.T) {
	got := drain(sse.NewReader(strings.NewReader("data: one\n\ndata: two\n\ndata: three\n\n")))
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("event[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestReader_SkipsCommentsAndOtherFields(t *testing.T) {
	input := ": keep-alive\nevent: ping\nid: 7\ndata: real\n\n"
	got := drain(sse.NewReader(strings.NewReader(input)))
	if len(got) != 1 || got[0] != "real" {
		t.Fatalf("got %v, want [real]", got)
	}
}

func TestReader_DoneSentinelSurfaced(t *testing.T) {
	// [DONE] is plain data here; transports interpret it upstream.
	got := drain(sse.NewReader(strings.NewReader("data: [DONE]\n\n")))
	if len(got) != 1 || got[0] != "[DONE]" {
		t.Fatalf("got %v, want [[DONE]]", got)
	}
}

func TestReader_EmptyStream(t *testing.T) {
	if got := drain(sse.NewReader(strings.NewReader(""))); len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

// A data line arriving one byte at a time must still come out as a single
// complete payload, regardless of where the transport chunked it.
func TestReader_PartialLineBuffering(t *testing.T) {
	input := "data: {\"text\":\"X\"}\n\n"
	r := sse.NewReader(iotest.OneByteReader(strings.NewReader(input)))
	got := drain(r)
	if len(got) != 1 || got[0] != `{"text":"X"}` {
		t.Fatalf("got %v, want one complete record", got)
	}
}
