package replay

import (
	"path/filepath"
	"testing"
)

func TestRecorderRoundTrip(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	turns := []struct {
		turn     int
		phase    string
		request  string
		response string
	}{
		{1, "CHOOSE_CLASSES", `{"phase":"CHOOSE_CLASSES","turn":1,"message":{}}`, `{"MEDIC":1}`},
		{2, "MOVE", `{"phase":"MOVE","turn":2,"message":{}}`, `null`},
		{3, "FINISH", `{"phase":"FINISH","turn":3,"message":{}}`, ``},
	}
	for _, tr := range turns {
		var resp []byte
		if tr.response != "" {
			resp = []byte(tr.response)
		}
		if err := rec.RecordTurn(tr.turn, tr.phase, []byte(tr.request), resp); err != nil {
			t.Fatalf("RecordTurn %d: %v", tr.turn, err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := ReadAll(rec.Path())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[0].Phase != "CHOOSE_CLASSES" || string(records[0].Response) != `{"MEDIC":1}` {
		t.Errorf("record 0 = %+v", records[0])
	}
	if string(records[1].Response) != "null" {
		t.Errorf("record 1 response = %s, want null", records[1].Response)
	}
	if len(records[2].Response) != 0 {
		t.Errorf("FINISH record should have no response, got %s", records[2].Response)
	}
}

func TestRecorderQuotesMalformedRequest(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if err := rec.RecordTurn(0, "", []byte("this is not json"), []byte("null")); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := ReadAll(rec.Path())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if string(records[0].Request) != `"this is not json"` {
		t.Errorf("request = %s, want quoted string", records[0].Request)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "nope.jsonl.zst")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
