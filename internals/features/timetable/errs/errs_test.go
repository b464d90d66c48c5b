package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{fmt.Errorf("%w: bad day", ErrValidation), KindValidation},
		{fmt.Errorf("%w: span past end", ErrRange), KindRange},
		{fmt.Errorf("wrap: %w", fmt.Errorf("%w: missing Friday", ErrMalformedResponse)), KindMalformedResponse},
		{fmt.Errorf("%w: no api key", ErrServiceUnavailable), KindServiceUnavailable},
		{errors.New("boom"), KindUnknown},
		{nil, KindUnknown},
		{NewFieldError("name", "required"), KindValidation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.err), "err=%v", tc.err)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "RangeError", KindRange.String())
	assert.Equal(t, "UnknownFailure", Kind(42).String())
}
