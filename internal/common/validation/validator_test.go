package validation

import (
	"strings"
	"testing"

	"uiforge/internal/common/errors"
)

func TestRequireString(t *testing.T) {
	if err := NewValidator().RequireString("hello", "title").Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewValidator().RequireString("   ", "title").Err(); err == nil {
		t.Error("whitespace-only string should fail")
	}
}

func TestMaxLength(t *testing.T) {
	long := strings.Repeat("x", 201)
	if err := NewValidator().MaxLength(long, "title", 200).Err(); err == nil {
		t.Error("201 chars should exceed max 200")
	}
	if err := NewValidator().MaxLength("short", "title", 200).Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireOneOf(t *testing.T) {
	allowed := []string{"user", "assistant"}
	if err := NewValidator().RequireOneOf("user", allowed, "role").Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewValidator().RequireOneOf("system", allowed, "role").Err(); err == nil {
		t.Error("disallowed role should fail")
	}
	if err := NewValidator().RequireOneOf("", allowed, "role").Err(); err == nil {
		t.Error("empty role should fail")
	}
}

func TestRequireEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org"}
	invalid := []string{"", "not-an-email", "a@b", "@example.com"}

	for _, e := range valid {
		if err := NewValidator().RequireEmail(e, "email").Err(); err != nil {
			t.Errorf("RequireEmail(%q) unexpected error: %v", e, err)
		}
	}
	for _, e := range invalid {
		if err := NewValidator().RequireEmail(e, "email").Err(); err == nil {
			t.Errorf("RequireEmail(%q) should fail", e)
		}
	}
}

func TestRequireUsername(t *testing.T) {
	if err := NewValidator().RequireUsername("dev_user-1", "username").Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, u := range []string{"ab", "has space", "way!bad", strings.Repeat("a", 33)} {
		if err := NewValidator().RequireUsername(u, "username").Err(); err == nil {
			t.Errorf("RequireUsername(%q) should fail", u)
		}
	}
}

func TestAccumulatesErrors(t *testing.T) {
	v := NewValidator().
		RequireString("", "title").
		RequireOneOf("wizard", []string{"user", "assistant"}, "role")

	if v.Valid() {
		t.Error("validator should be invalid")
	}

	err := v.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsType(err, errors.ErrTypeValidation) {
		t.Errorf("expected validation error, got %v", errors.GetType(err))
	}
	if !strings.Contains(err.Error(), "title") || !strings.Contains(err.Error(), "role") {
		t.Errorf("error should mention both failures: %v", err)
	}
}
