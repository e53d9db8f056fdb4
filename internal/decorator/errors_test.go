package decorator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator_Validate(t *testing.T) {
	err := Decorator{Name: "x", Component: RenderHashtag}.Validate(2)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "strategy is required")
	assert.Contains(t, err.Error(), "index=2")

	err = Decorator{Name: "x", Strategy: HashtagPattern}.Validate(0)
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "component is required")

	assert.NoError(t, Hashtag().Validate(0))
}

func TestWithDecorator_WrapsForeignErrors(t *testing.T) {
	sentinel := errors.New("boom")
	err := WithDecorator(fmt.Errorf("render: %w", sentinel), Hashtag(), 1)

	assert.True(t, IsRendererFailure(err))
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "decorator=hashtag")
}

func TestWithDecorator_AnnotatesDecoratorErrors(t *testing.T) {
	base := newNonAdvancingError(`x*`, 0)
	err := WithDecorator(base, Decorator{Strategy: HashtagPattern}, 3)

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrCodeNonAdvancingPattern, de.Code)
	assert.Equal(t, HashtagPattern.String(), de.Decorator)
	assert.Equal(t, 3, de.Index)
	assert.Equal(t, -1, base.Index, "original error must not be modified")
}

func TestWithDecorator_Nil(t *testing.T) {
	assert.NoError(t, WithDecorator(nil, Hashtag(), 0))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "generic", KindGeneric.String())
	assert.Equal(t, "line_break", KindLineBreak.String())
}

func TestRendererFailure_KeepsDecoratorErrorsWrapped(t *testing.T) {
	inner := newNonAdvancingError(`x*`, 2)
	err := RendererFailure(fmt.Errorf("nested: %w", inner), Hashtag(), 4)

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrCodeRendererFailed, de.Code)
	assert.Equal(t, "hashtag", de.Decorator)
	assert.Equal(t, 4, de.Index)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "nested")
	assert.Equal(t, -1, inner.Index)
}

func TestRendererFailure_Nil(t *testing.T) {
	assert.NoError(t, RendererFailure(nil, Hashtag(), 0))
}
