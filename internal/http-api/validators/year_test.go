package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearNotInFuture(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, YearNotInFuture(current))
	assert.NoError(t, YearNotInFuture(current-30))
	assert.NoError(t, YearNotInFuture(1895))
	assert.Error(t, YearNotInFuture(current+1))
}
