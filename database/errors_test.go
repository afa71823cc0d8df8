package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestTranslateErrorNil(t *testing.T) {
	if err := TranslateError("Op", "Asset", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestTranslateErrorUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	tests := []struct {
		name string
		err  error
	}{
		{name: "Direct", err: pqErr},
		{name: "Wrapped", err: fmt.Errorf("create failed: %w", pqErr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := TranslateError("CreateWatchlist", "Watchlist", tt.err)
			var conflict *ConflictError
			if !errors.As(translated, &conflict) {
				t.Fatalf("expected ConflictError, got %T: %v", translated, translated)
			}
			if conflict.Resource != "Watchlist" {
				t.Errorf("expected resource Watchlist, got %s", conflict.Resource)
			}
		})
	}
}

func TestTranslateErrorOtherErrorsBecomeStorageErrors(t *testing.T) {
	cause := errors.New("connection reset")
	translated := TranslateError("ListWatchlists", "Watchlist", cause)

	var storage *StorageError
	if !errors.As(translated, &storage) {
		t.Fatalf("expected StorageError, got %T: %v", translated, translated)
	}
	if storage.Operation != "ListWatchlists" {
		t.Errorf("expected operation ListWatchlists, got %s", storage.Operation)
	}
	if !errors.Is(translated, cause) {
		t.Error("expected the cause to survive unwrapping")
	}
}

func TestTranslateErrorOtherPqCodesAreNotConflicts(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Message: "foreign key violation"}
	translated := TranslateError("CreateAlert", "Alert", pqErr)

	var conflict *ConflictError
	if errors.As(translated, &conflict) {
		t.Fatalf("foreign key violation must not map to ConflictError: %v", translated)
	}
}

func TestErrorMessages(t *testing.T) {
	notFound := NewNotFoundErrorWithID("Watchlist", 3)
	if notFound.Error() != "Watchlist not found: 3" {
		t.Errorf("unexpected message: %s", notFound.Error())
	}

	conflict := NewConflictError("Watchlist", "name 'Tech Stocks' already exists")
	if conflict.Error() != "Watchlist conflict: name 'Tech Stocks' already exists" {
		t.Errorf("unexpected message: %s", conflict.Error())
	}

	validation := NewValidationError("alert", "unknown alert type")
	if validation.Error() != "validation failed for field 'alert': unknown alert type" {
		t.Errorf("unexpected message: %s", validation.Error())
	}
}
