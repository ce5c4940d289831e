package core_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/aretw0/benchbook/pkg/core"
)

func TestReadErrorUnwraps(t *testing.T) {
	err := &core.ReadError{Path: "Daily/x.md", Err: os.ErrNotExist}

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected ReadError to unwrap to its cause")
	}

	var re *core.ReadError
	wrapped := fmt.Errorf("scan: %w", err)
	if !errors.As(wrapped, &re) {
		t.Error("expected errors.As to find ReadError through wrapping")
	}
	if re.Path != "Daily/x.md" {
		t.Errorf("unexpected path: %s", re.Path)
	}
}

func TestConflictSentinel(t *testing.T) {
	err := fmt.Errorf("Experiments/E250101A: %w", core.ErrConflict)
	if !errors.Is(err, core.ErrConflict) {
		t.Error("expected wrapped conflict to match sentinel")
	}
}
