package storage

import (
	"context"
	"testing"

	"github.com/baseplate/cms/config"
	"github.com/baseplate/cms/internal/core/model"
)

func TestOpen_Memory(t *testing.T) {
	repo, closer, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closer.Close()

	m := model.New("Notes")
	m.ID = "notes"
	if err := repo.Save(context.Background(), &m); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(context.Background(), "notes")
	if err != nil || got == nil || got.Name != "Notes" {
		t.Errorf("get = %+v, %v", got, err)
	}
}

func TestOpen_File(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverFile, JSONPath: t.TempDir()}}
	repo, closer, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closer.Close()

	catalog, err := repo.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(catalog.Models) != 0 {
		t.Errorf("fresh store has %d models", len(catalog.Models))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, _, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "redis"}}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
