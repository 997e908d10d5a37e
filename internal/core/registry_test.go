package core_test

import (
	"testing"

	"github.com/faa-hf/confsite/internal/core"
)

func TestKinds_RegisteredByTablesPackage(t *testing.T) {
	if got := core.KindCount(); got != 3 {
		t.Fatalf("KindCount() = %d, want 3", got)
	}

	kinds := core.Kinds()
	wantKeys := []string{"keynotes", "tutorials", "papers"}
	for i, key := range wantKeys {
		if kinds[i].Key != key {
			t.Errorf("Kinds()[%d].Key = %q, want %q", i, kinds[i].Key, key)
		}
	}

	papers, ok := core.Kind("papers")
	if !ok {
		t.Fatal("Kind(papers) not found")
	}
	if !papers.Organize {
		t.Error("papers kind should honor the organize flag")
	}
	if _, ok := core.Kind("posters"); ok {
		t.Error("Kind(posters) found, want missing")
	}
}

func TestRegisterKind_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RegisterKind() did not panic on duplicate key")
		}
	}()
	core.RegisterKind(core.KindDefinition{Key: "papers", Token: "other.csv", Title: "Other", Priority: 9})
}
