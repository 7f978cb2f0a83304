package persona

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListPersonas(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "personas"))

	t.Run("MissingDirectory", func(t *testing.T) {
		personas, err := manager.ListPersonas()
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if len(personas) != 0 {
			t.Errorf("Expected empty list, got %v", personas)
		}
	})

	t.Run("WithSnapshots", func(t *testing.T) {
		for _, name := range []string{"zesty", "cozy"} {
			if err := manager.SavePersona(name, Default(), false); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.WriteFile(filepath.Join(manager.personasDir, "notes.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		personas, err := manager.ListPersonas()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"cozy", "zesty"}, personas); diff != "" {
			t.Errorf("ListPersonas mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSaveAndReadPersona(t *testing.T) {
	manager := NewManager(t.TempDir())

	cfg := Default()
	cfg.Identity.Name = "Pixel"
	cfg.Voice.Energy = 9

	if err := manager.SavePersona("night-stream", cfg, false); err != nil {
		t.Fatalf("SavePersona failed: %v", err)
	}
	if !manager.PersonaExists("night-stream") {
		t.Fatal("Snapshot should exist after save")
	}

	got, err := manager.ReadPersona("night-stream")
	if err != nil {
		t.Fatalf("ReadPersona failed: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("Snapshot does not round-trip (-want +got):\n%s", diff)
	}
}

func TestSavePersona_Overwrite(t *testing.T) {
	manager := NewManager(t.TempDir())

	if err := manager.SavePersona("main", Default(), false); err != nil {
		t.Fatal(err)
	}
	if err := manager.SavePersona("main", Default(), false); err == nil {
		t.Error("Expected error when saving over an existing snapshot")
	}
	if err := manager.SavePersona("main", Default(), true); err != nil {
		t.Errorf("Overwrite should succeed, got %v", err)
	}
}

func TestSavePersona_InvalidName(t *testing.T) {
	manager := NewManager(t.TempDir())

	for _, name := range []string{"", "../escape", "has space", "-leading"} {
		if err := manager.SavePersona(name, Default(), false); err == nil {
			t.Errorf("Expected error for name %q", name)
		}
	}
}

func TestReadPersona_Errors(t *testing.T) {
	manager := NewManager(t.TempDir())

	if _, err := manager.ReadPersona("missing"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot, got %v", err)
	}

	if err := os.WriteFile(manager.GetPersonaPath("broken"), []byte("voice:\n  energy: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := manager.ReadPersona("broken")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

func TestDeletePersona(t *testing.T) {
	manager := NewManager(t.TempDir())

	if err := manager.SavePersona("old", Default(), false); err != nil {
		t.Fatal(err)
	}
	if err := manager.DeletePersona("old"); err != nil {
		t.Fatalf("DeletePersona failed: %v", err)
	}
	if manager.PersonaExists("old") {
		t.Error("Snapshot should be gone")
	}
	if err := manager.DeletePersona("old"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot, got %v", err)
	}
}
