package validators

import (
	"fmt"
	"time"
)

// YearNotInFuture rejects release years beyond the current calendar year.
func YearNotInFuture(year int) error {
	if current := time.Now().Year(); year > current {
		return fmt.Errorf("year %d must not be greater than %d", year, current)
	}
	return nil
}
