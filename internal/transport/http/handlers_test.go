package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrOverlap, http.StatusConflict},
		{domain.ErrInvalidRange, http.StatusUnprocessableEntity},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{fmt.Errorf("booking abc: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%s -> %s: %w", domain.StatusCompleted, domain.StatusPending, domain.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := statusFor(c.err); got != c.want {
			t.Errorf("statusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
