package renderer

import (
	"testing"

	"github.com/ryanlewis/bitmapwriter/internal/common"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
)

// recordingSink keeps every event in memory.
type recordingSink struct {
	events []debug.Event
}

func (s *recordingSink) Write(e debug.Event) error {
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) Flush() error { return nil }
func (s *recordingSink) Close() error { return nil }

func newRecordingSession(t *testing.T) (*debug.Session, *recordingSink) {
	t.Helper()
	debug.SetEnabled(true)
	t.Cleanup(func() { debug.SetEnabled(false) })
	sink := &recordingSink{}
	return debug.NewSession(sink), sink
}

func TestRenderDebugEvents(t *testing.T) {
	session, sink := newRecordingSession(t)

	bm := &Bitmap{Width: 4, Height: 3, Pix: []byte{0xf0, 0x00}}
	opts := &Options{
		Style:    common.StyleUnicodeBlock1x2,
		Frame:    common.FrameUnicode,
		Position: &Position{Line: 2, Column: 5},
		Debug:    session,
	}
	if _, err := Render(bm, opts); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	var names []string
	for _, e := range sink.events {
		names = append(names, e.Phase+"/"+e.Event)
	}
	want := []string{"session/Start", "render/Start", "render/Row", "render/Row", "render/End"}
	if len(names) != len(want) {
		t.Fatalf("events = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, names[i], want[i])
		}
	}

	start, ok := sink.events[1].Data.(debug.RenderStartData)
	if !ok {
		t.Fatalf("start data has type %T", sink.events[1].Data)
	}
	if start.Columns != 4 || start.Rows != 2 || start.Style != "block1x2" || start.Frame != "light" {
		t.Errorf("start = %+v", start)
	}
	if start.Positioning != "explicit" || start.BitOrder != "little-endian" || start.Alignment != "packed" {
		t.Errorf("start = %+v", start)
	}

	first := sink.events[2].Data.(debug.RowData)
	if first.Row != 0 || first.PixelY != 0 || first.Line != 1 || first.Set != 4 {
		t.Errorf("first row = %+v", first)
	}
	second := sink.events[3].Data.(debug.RowData)
	if second.Row != 1 || second.PixelY != 2 || second.Set != 0 {
		t.Errorf("second row = %+v", second)
	}

	end := sink.events[4].Data.(debug.RenderEndData)
	if end.TotalLines != 4 || end.TotalGlyphs != 8 {
		t.Errorf("end = %+v", end)
	}
}

func TestRenderDebugErrorEvent(t *testing.T) {
	session, sink := newRecordingSession(t)

	bm := &Bitmap{Width: 2, Height: 2, Pix: []byte{0xff}}
	err := RenderTo(&failingWriter{}, bm, &Options{Style: common.StyleUnicodeBlock1x2, Debug: session})
	if err == nil {
		t.Fatal("RenderTo() expected error")
	}

	found := false
	for _, e := range sink.events {
		if e.Phase == "render" && e.Event == "Error" {
			found = true
			if d := e.Data.(debug.ErrorData); d.Type != "sink_write" {
				t.Errorf("error type = %q", d.Type)
			}
		}
	}
	if !found {
		t.Error("no render/Error event emitted")
	}
}
