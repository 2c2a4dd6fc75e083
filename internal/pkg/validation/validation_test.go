package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name     string  `validate:"required"`
	Email    string  `validate:"omitempty,email"`
	Price    float64 `validate:"gt=0"`
	Category string  `validate:"omitempty,oneof=Clothing Bags"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sample{Name: "Tee", Price: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_JoinsMessages(t *testing.T) {
	err := Struct(sample{Email: "nope", Price: 0, Category: "Hats"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{
		"name is required",
		"email must be a valid email",
		"price must be greater than 0",
		"category must be one of: Clothing Bags",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}
