package ferrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/ferrors"
)

func TestNew(t *testing.T) {
	err := ferrors.New(ferrors.CodeInvalidInput, "test error")
	require.NotNil(t, err)
	assert.Equal(t, ferrors.CodeInvalidInput, err.Code())
	assert.Equal(t, "test error", err.Message())
}

func TestNewf(t *testing.T) {
	err := ferrors.Newf(ferrors.CodeInvalidConfig, "invalid value: %d", 42)
	require.NotNil(t, err)
	assert.Equal(t, "invalid value: 42", err.Message())
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ferrors.Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      ferrors.New(ferrors.CodeElementNotFound, "element not found"),
			expected: "[ELEMENT_NOT_FOUND] element not found",
		},
		{
			name: "error with cause",
			err: ferrors.Wrap(
				errors.New("underlying error"),
				ferrors.CodeHostInspection,
				"failed to get element",
			),
			expected: "[HOST_INSPECTION_ERROR] failed to get element: underlying error",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := ferrors.Wrap(cause, ferrors.CodeTimeout, "dial failed")

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestError_Is(t *testing.T) {
	err1 := ferrors.New(ferrors.CodeElementNotFound, "first")
	err2 := ferrors.New(ferrors.CodeElementNotFound, "second")
	err3 := ferrors.New(ferrors.CodeTimeout, "third")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, ferrors.Wrap(nil, ferrors.CodeInternal, "should stay nil"))
	assert.Nil(t, ferrors.Wrapf(nil, ferrors.CodeInternal, "should stay nil: %d", 1))
}

func TestWithContext(t *testing.T) {
	err := ferrors.New(ferrors.CodeSelectorParse, "bad selector").
		WithContext("offset", 4).
		WithContext("input", "Type[]")

	require.NotNil(t, err.Context())
	assert.Equal(t, 4, err.Context()["offset"])
	assert.Equal(t, "Type[]", err.Context()["input"])
}

func TestIsCodeAndGetCode(t *testing.T) {
	err := ferrors.New(ferrors.CodeElementNotInteractable, "cannot tap")

	assert.True(t, ferrors.IsCode(err, ferrors.CodeElementNotInteractable))
	assert.False(t, ferrors.IsCode(err, ferrors.CodeTimeout))
	assert.Equal(t, ferrors.CodeElementNotInteractable, ferrors.GetCode(err))

	plain := errors.New("not a domain error")
	assert.Equal(t, ferrors.CodeInternal, ferrors.GetCode(plain))
}
