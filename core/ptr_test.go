package core

import (
	"testing"
)

func TestPtr(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		value := 42
		ptr := Ptr(value)
		if ptr == nil {
			t.Fatal("Expected non-nil pointer")
		}
		if *ptr != value {
			t.Errorf("Expected *ptr to be %d, got %d", value, *ptr)
		}
		// Verify it’s a different address
		if ptr == &value {
			t.Error("Expected different memory address from original variable")
		}
	})

	t.Run("bool", func(t *testing.T) {
		ptr := Ptr(true)
		if ptr == nil {
			t.Fatal("Expected non-nil pointer")
		}
		if !*ptr {
			t.Error("Expected *ptr to be true")
		}
	})

	t.Run("multiple calls", func(t *testing.T) {
		// Verify each call creates a new pointer
		value := 100
		ptr1 := Ptr(value)
		ptr2 := Ptr(value)

		if ptr1 == ptr2 {
			t.Error("Expected different pointers from multiple Ptr calls")
		}

		if *ptr1 != *ptr2 {
			t.Errorf("Expected same value, got %d and %d", *ptr1, *ptr2)
		}
	})
}
