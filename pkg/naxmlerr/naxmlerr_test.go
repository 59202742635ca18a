package naxmlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeDatabaseFailure, cause, "writing transaction bundle")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "DATABASE_FAILURE")
}

func TestIsMatchesByCodeNotMessage(t *testing.T) {
	err := fmt.Errorf("classifying file: %w", New(CodePathTraversal, "archive_path escapes exchange root"))

	assert.True(t, Is(err, CodePathTraversal))
	assert.False(t, Is(err, CodeInvalidXML))
}

func TestCodeOf(t *testing.T) {
	_, ok := CodeOf(errors.New("plain error"))
	assert.False(t, ok)

	code, ok := CodeOf(New(CodeUnknownDocumentType, "root <Foo> not recognized"))
	assert.True(t, ok)
	assert.Equal(t, CodeUnknownDocumentType, code)
}
