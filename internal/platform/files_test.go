package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "media", "AbCdEfGh")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestCreateUniqueDirectory(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "media")

	first, err := CreateUniqueDirectory(parent, 8)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	second, err := CreateUniqueDirectory(parent, 8)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if first == second {
		t.Fatalf("Expected distinct directories, got %s twice", first)
	}
	for _, dir := range []string{first, second} {
		if filepath.Dir(dir) != parent || len(filepath.Base(dir)) != 8 {
			t.Errorf("Unexpected directory %s", dir)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("Directory %s was not created: %v", dir, err)
		}
	}
}

func TestCreateUniqueDirectory_RegeneratesTakenName(t *testing.T) {
	parent := t.TempDir()
	if err := os.Mkdir(filepath.Join(parent, "taken"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	names := []string{"taken", "taken", "free"}
	next := func() string {
		name := names[0]
		names = names[1:]
		return name
	}

	dir, err := createUniqueDirectory(parent, next)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if dir != filepath.Join(parent, "free") {
		t.Errorf("Expected the first free name, got %s", dir)
	}
}

func TestCreateUniqueDirectory_GivesUp(t *testing.T) {
	parent := t.TempDir()
	if err := os.Mkdir(filepath.Join(parent, "taken"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	calls := 0
	_, err := createUniqueDirectory(parent, func() string {
		calls++
		return "taken"
	})
	if err == nil {
		t.Fatal("Expected error when every name is taken")
	}
	if calls != MaxDirectoryAttempts {
		t.Errorf("Expected %d attempts, got %d", MaxDirectoryAttempts, calls)
	}
}

func TestProjectRoot(t *testing.T) {
	root, err := ProjectRoot()
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}

	wd, _ := os.Getwd()
	if root != filepath.Dir(wd) {
		t.Errorf("Expected project root %s, got %s", filepath.Dir(wd), root)
	}
}

func TestFindFirstFileWithExt(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b talk.mp4", "a talk.mp4", "c.mp4.part", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "0.mp4"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	found, err := FindFirstFileWithExt(dir, ".mp4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if found != filepath.Join(dir, "a talk.mp4") {
		t.Errorf("Expected 'a talk.mp4', got %s", found)
	}
}

func TestFindFirstFileWithExt_NoMatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "video.mp4.part"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	_, err := FindFirstFileWithExt(dir, ".mp4")
	if err == nil {
		t.Fatal("Expected error when only partial files exist")
	}

	if !strings.Contains(err.Error(), "no .mp4 file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestFindFirstFileWithExt_MissingDir(t *testing.T) {
	_, err := FindFirstFileWithExt(filepath.Join(t.TempDir(), "missing"), ".mp4")
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}
