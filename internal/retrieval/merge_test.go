package retrieval

import (
	"testing"

	"github.com/bokji-cloud/genie/internal/domain"
)

func TestMergeDeduplicate_DropsRepeatedBodyAndName(t *testing.T) {
	a := []domain.Record{
		{EntryName: "아이돌봄 서비스", Body: "body-1"},
		{EntryName: "국민임대주택", Body: "body-2"},
	}
	b := []domain.Record{
		{EntryName: "아이돌봄 서비스", Body: "body-1"},
		{EntryName: "긴급복지 생계지원", Body: "body-3"},
	}

	got := MergeDeduplicate(a, b)
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	want := []string{"아이돌봄 서비스", "국민임대주택", "긴급복지 생계지원"}
	for i, w := range want {
		if got[i].EntryName != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].EntryName, w)
		}
	}
}

func TestMergeDeduplicate_SameNameDifferentBodyKept(t *testing.T) {
	a := []domain.Record{{EntryName: "아이돌봄 서비스", Body: "fragment-1"}}
	b := []domain.Record{{EntryName: "아이돌봄 서비스", Body: "fragment-2"}}

	got := MergeDeduplicate(a, b)
	if len(got) != 2 {
		t.Fatalf("distinct bodies under one name must both survive, got %d", len(got))
	}
}

func TestMergeDeduplicate_EmptyInputs(t *testing.T) {
	if got := MergeDeduplicate(nil, nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
