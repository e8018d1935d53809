package catalog

import (
	"encoding/json"
	"testing"
)

const sampleStructure = `{
	"자동차용품": {
		"오일/첨가제/필터": [["엔진오일", "https://shop.example/oil"], ["에어필터", "https://shop.example/filter"]],
		"세차/와이퍼/방향제": [["세차용품", "https://shop.example/wash"]]
	},
	"반려동물용품": {
		"강아지 사료": [["건식사료", "https://shop.example/dogfood"]]
	}
}`

func TestStructureUnmarshalPreservesOrder(t *testing.T) {
	var s Structure
	if err := json.Unmarshal([]byte(sampleStructure), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected 2 top categories, got %d", len(s))
	}
	if s[0].Name != "자동차용품" || s[1].Name != "반려동물용품" {
		t.Fatalf("top order lost: %q, %q", s[0].Name, s[1].Name)
	}
	if len(s[0].Mids) != 2 {
		t.Fatalf("expected 2 mids under first top, got %d", len(s[0].Mids))
	}
	if s[0].Mids[0].Name != "오일/첨가제/필터" || s[0].Mids[1].Name != "세차/와이퍼/방향제" {
		t.Fatalf("mid order lost: %q, %q", s[0].Mids[0].Name, s[0].Mids[1].Name)
	}
	if got := s[0].Mids[0].Details[1]; got.Name != "에어필터" || got.URL != "https://shop.example/filter" {
		t.Fatalf("detail decoded wrong: %+v", got)
	}
}

func TestStructureUnmarshalRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an object", `[1, 2]`},
		{"detail not a pair", `{"top": {"mid": [["only-name"]]}}`},
		{"detail not strings", `{"top": {"mid": [[1, 2]]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Structure
			if err := json.Unmarshal([]byte(tt.in), &s); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestDetailMarshalRoundTrip(t *testing.T) {
	d := Detail{Name: "엔진오일", URL: "https://shop.example/oil"}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `["엔진오일","https://shop.example/oil"]` {
		t.Fatalf("unexpected encoding: %s", raw)
	}
	var back Detail
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != d {
		t.Fatalf("round trip changed value: %+v", back)
	}
}

func TestLookups(t *testing.T) {
	var s Structure
	if err := json.Unmarshal([]byte(sampleStructure), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	top, ok := s.Top("반려동물용품")
	if !ok || len(top.Mids) != 1 {
		t.Fatalf("top lookup failed: %+v ok=%v", top, ok)
	}
	if _, ok := s.Top("없는카테고리"); ok {
		t.Fatal("expected miss for unknown top")
	}

	mid, ok := s.Mid("강아지 사료")
	if !ok || mid.Details[0].Name != "건식사료" {
		t.Fatalf("mid lookup failed: %+v ok=%v", mid, ok)
	}
	if _, ok := s.Mid("자동차용품"); ok {
		t.Fatal("top name must not resolve as a mid")
	}
}
