// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTree_ReadTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"item/apple.png":    "apple",
		"block/stone/a.png": "stone",
		"empty/":            "",
		"block/notes.txt":   "txt",
	})

	info, err := os.Stat(filepath.Join(root, "empty"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected empty directory, got %v, %v", info, err)
	}

	got := ReadTree(t, root)
	want := map[string]string{
		"item/apple.png":    "apple",
		"block/stone/a.png": "stone",
		"block/notes.txt":   "txt",
	}
	if len(got) != len(want) {
		t.Fatalf("ReadTree() returned %d files, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ReadTree()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestReadTree_MissingRoot(t *testing.T) {
	t.Parallel()

	got := ReadTree(t, filepath.Join(t.TempDir(), "missing"))
	if len(got) != 0 {
		t.Errorf("ReadTree() of missing root = %v, want empty", got)
	}
}

func TestMustSetenv_Restores(t *testing.T) {
	const key = "TEXSHUFFLE_TESTUTIL_PROBE"
	restore := MustSetenv(t, key, "1")
	if os.Getenv(key) != "1" {
		t.Fatalf("MustSetenv did not set %s", key)
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after restore", key)
	}
}
