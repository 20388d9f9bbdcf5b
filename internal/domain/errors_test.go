package domain

import (
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	if !IsNotFound(ErrOrderNotFound) {
		t.Error("ErrOrderNotFound should be classified as not-found")
	}
	if !IsNotFound(fmt.Errorf("load order: %w", ErrOrderNotFound)) {
		t.Error("wrapped ErrOrderNotFound should be classified as not-found")
	}
	if IsNotFound(ErrOrderConflict) {
		t.Error("ErrOrderConflict must not be classified as not-found")
	}

	if !IsConflict(ErrOrderConflict) {
		t.Error("ErrOrderConflict should be classified as conflict")
	}
	if !IsConflict(fmt.Errorf("save order: %w", ErrOrderConflict)) {
		t.Error("wrapped ErrOrderConflict should be classified as conflict")
	}
	if IsConflict(ErrOrderNotFound) {
		t.Error("ErrOrderNotFound must not be classified as conflict")
	}
}
