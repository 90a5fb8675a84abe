package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Argument Error", Argument.String())
	assert.Equal(t, "Configuration Error", Configuration.String())
	assert.Equal(t, "Parse Error", Parse.String())
	assert.Equal(t, "External Tool Error", External.String())
	assert.Equal(t, "Error", ErrorCategory(99).String())
}

func TestConstructors(t *testing.T) {
	tests := map[string]struct {
		err  *CLIError
		want ErrorCategory
	}{
		"argument":      {NewArgumentError("bad flag", "fix it"), Argument},
		"configuration": {NewConfigError("bad config"), Configuration},
		"parse":         {NewParseError("bad output"), Parse},
		"external":      {NewExternalError("tool failed"), External},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Category)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")

	wrapped := Wrap(cause, External, "try again")
	require.NotNil(t, wrapped)
	assert.Equal(t, External, wrapped.Category)
	assert.Equal(t, "underlying failure", wrapped.Error())
	assert.Equal(t, []string{"try again"}, wrapped.Remediation)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestWrapWithMessage(t *testing.T) {
	cause := fmt.Errorf("open /x: no such file")

	wrapped := WrapWithMessage(cause, Configuration, "reading upstream changelog")
	require.NotNil(t, wrapped)
	assert.Equal(t, "reading upstream changelog: open /x: no such file", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, External))
	assert.Nil(t, WrapWithMessage(nil, External, "msg"))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewArgumentError("bad")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(fmt.Errorf("plain")))
	assert.True(t, IsCLIError(cliErr))
	assert.False(t, IsCLIError(fmt.Errorf("plain")))
}
