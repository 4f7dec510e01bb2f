package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnglishStopword(t *testing.T) {
	assert.True(t, IsEnglishStopword("the"))
	assert.True(t, IsEnglishStopword("whereupon"))
	assert.False(t, IsEnglishStopword("python"))
	assert.False(t, IsEnglishStopword("experience"))
}

func TestIsExtendedStopword_AddsDomainFiller(t *testing.T) {
	assert.True(t, IsExtendedStopword("experience"))
	assert.True(t, IsExtendedStopword("candidate"))
	assert.True(t, IsExtendedStopword("the"))
	assert.False(t, IsExtendedStopword("kubernetes"))
}
