package errf

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
		text string
	}{
		{"type", Type("no op for %s", "str32"), KindType, "TypeError: no op for str32"},
		{"value", Value("row %d out of range", 9), KindValue, "ValueError: row 9 out of range"},
		{"key", Key("colx", ""), KindKey, `KeyError: column "colx" does not exist`},
		{"not implemented", NotImplemented("median on obj"), KindNotImplemented, "NotImplementedError: median on obj"},
		{"runtime", Runtime("bad state"), KindRuntime, "RuntimeError: bad state"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind())
			assert.Equal(t, tt.text, tt.err.Error())
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestKeySuggestion(t *testing.T) {
	err := Key("heihgt", "height")
	assert.Equal(t, `KeyError: column "heihgt" does not exist; did you mean "height"?`, err.Error())
}

func TestWithPos(t *testing.T) {
	err := WithPos(Type("bad"), "f.x + 1")
	assert.Equal(t, "TypeError: bad (in f.x + 1)", err.Error())

	// The innermost position wins as the error unwinds.
	err = WithPos(err, "outer expression")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "f.x + 1", e.Pos())
}

func TestWithPosForeignError(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, WithPos(plain, "somewhere"))
}

func TestIsKind(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), KindType))
	assert.False(t, IsKind(nil, KindType))
	assert.False(t, IsKind(Type("x"), KindValue))

	wrapped := fmt.Errorf("context: %w", Value("x"))
	assert.True(t, IsKind(wrapped, KindValue), "wrapped engine errors keep their kind")
}
