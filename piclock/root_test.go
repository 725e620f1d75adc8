package piclock

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireRoot(t *testing.T) {
	err := RequireRoot()
	if os.Getuid() == 0 {
		assert.Nil(t, err)
	} else {
		assert.Equal(t, ErrNotRoot, err)
	}
}
