package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bokji-cloud/genie/internal/domain"
)

func testStore() *Store {
	return New([]domain.Record{
		{
			EntryName:     "아이돌봄 서비스",
			MajorCategory: "3장. 보육 지원",
			MinorCategory: "1. 돌봄 지원",
			ItemKind:      "rows",
		},
		{
			EntryName:     "국민임대주택",
			MajorCategory: "5장. 주거 지원",
			MinorCategory: "2. 주거 지원",
			ItemKind:      "rows",
		},
		{
			EntryName:     "아이돌봄 서비스",
			MajorCategory: "3장. 보육 지원",
			MinorCategory: "1. 돌봄 지원",
			ItemKind:      "sections",
		},
	})
}

func TestLookup_PrefixMatch(t *testing.T) {
	s := testStore()

	got := s.Lookup(domain.FieldMajorCategory, "3장")
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.EntryName != "아이돌봄 서비스" {
			t.Errorf("unexpected record %q", r.EntryName)
		}
	}
}

func TestLookup_EmptyFieldNeverMatches(t *testing.T) {
	s := New([]domain.Record{{EntryName: "이름만 있는 레코드"}})

	// The record's major category is empty; even an empty-prefix lookup
	// must not match it.
	if got := s.Lookup(domain.FieldMajorCategory, ""); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestLookup_UnknownField(t *testing.T) {
	s := testStore()

	if got := s.Lookup("없는필드", "값"); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestLookupAll_CombinedFilters(t *testing.T) {
	s := testStore()

	got := s.LookupAll(map[string]string{
		domain.FieldEntryName: "아이돌봄 서비스",
		domain.FieldItemKind:  "sections",
	})
	if len(got) != 1 || got[0].ItemKind != "sections" {
		t.Fatalf("got %v", got)
	}
}

func TestLookup_PreservesLoadOrder(t *testing.T) {
	s := testStore()

	got := s.Lookup(domain.FieldEntryName, "아이돌봄 서비스")
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ItemKind != "rows" || got[1].ItemKind != "sections" {
		t.Errorf("load order broken: %q, %q", got[0].ItemKind, got[1].ItemKind)
	}
}

func TestSchema_Derived(t *testing.T) {
	s := testStore()

	schema := s.Schema()
	if len(schema.EntryNames) != 2 {
		t.Errorf("entry names: got %v", schema.EntryNames)
	}
	for _, want := range []string{"# [전체 카테고리 목록]", "## 3장. 보육 지원", "- 1. 돌봄 지원"} {
		if !strings.Contains(schema.ContextString, want) {
			t.Errorf("context missing %q:\n%s", want, schema.ContextString)
		}
	}
}

func TestLoad_JSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	data := `{"body": "b1", "사업명": "아이돌봄 서비스", "대분류": "3장. 보육 지원", "중분류": "1. 돌봄 지원"}

{"body": "b2", "사업명": "국민임대주택", "대분류": "5장. 주거 지원", "중분류": "2. 주거 지원"}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("got %d records, want 2", s.Len())
	}
	if s.Records()[0].Body != "b1" || s.Records()[0].EntryName != "아이돌봄 서비스" {
		t.Errorf("first record: %+v", s.Records()[0])
	}
}

func TestLoad_BadLineReportsLineNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	data := "{\"body\": \"ok\", \"사업명\": \"x\"}\n{broken\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	if err := os.WriteFile(path, []byte("\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, domain.ErrCatalogNotLoaded) {
		t.Errorf("got %v, want ErrCatalogNotLoaded", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
