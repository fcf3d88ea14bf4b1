package models

import "testing"

func TestPositionValue(t *testing.T) {
	v, err := Position{X: 30, Y: 42.5}.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != `{"x":30,"y":42.5}` {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestSizeScan(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  Size
	}{
		{"bytes", []byte(`{"width":-15,"height":18}`), Size{Width: -15, Height: 18}},
		{"string", `{"width":3,"height":16}`, Size{Width: 3, Height: 16}},
		{"nil", nil, Size{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s Size
			if err := s.Scan(tc.value); err != nil {
				t.Fatal(err)
			}
			if s != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, s)
			}
		})
	}
}

func TestScanRejectsUnknownType(t *testing.T) {
	var p Position
	if err := p.Scan(42); err == nil {
		t.Fatal("expected error for int value")
	}
	if err := p.Scan([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestMessageUpdateColumns(t *testing.T) {
	if !(MessageUpdate{}).IsEmpty() {
		t.Fatal("zero update must be empty")
	}

	content := "hi"
	upd := MessageUpdate{Content: &content, Position: &Position{X: 1, Y: 2}}
	cols := upd.Columns()
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %v", cols)
	}
	if cols["content"] != "hi" {
		t.Fatalf("unexpected content %v", cols["content"])
	}
	if _, ok := cols["size"]; ok {
		t.Fatal("size must not be present")
	}
}
