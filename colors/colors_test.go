package colors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	saved := color.NoColor
	defer func() { color.NoColor = saved }()
	color.NoColor = true

	assert.Equal(t, "200", Status(200))
	assert.Equal(t, "404", Status(404))
	assert.Equal(t, "500", Status(500))
}
