package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/leadsite/marketing-api/internal/infrastructure/config"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close(context.Background())

	if s.Users == nil || s.Contacts == nil {
		t.Fatalf("expected repositories to be set")
	}
	if len(s.Pingers) != 0 {
		t.Fatalf("memory store has nothing to ping, got %d pingers", len(s.Pingers))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
