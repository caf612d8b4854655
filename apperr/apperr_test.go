package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Store(errors.New("db down")), http.StatusInternalServerError},
		{Internal("oops"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.Kind.Status(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestFrom(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", NotFound("task missing"))
	if e := From(wrapped); e.Kind != KindNotFound || e.Message != "task missing" {
		t.Fatalf("expected the wrapped not found error, got %#v", e)
	}

	cause := errors.New("disk I/O error")
	e := From(cause)
	if e.Kind != KindStore || e.Message != cause.Error() {
		t.Fatalf("expected store error carrying the message, got %#v", e)
	}
	if !errors.Is(e, cause) {
		t.Fatalf("expected store error to unwrap to its cause")
	}
}
