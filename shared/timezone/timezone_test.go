package timezone_test

import (
	"testing"
	"time"

	"studio/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { timezone.Init("UTC") })

	assert.Equal(t, time.UTC, timezone.Init(""))
	assert.Equal(t, time.UTC, timezone.Init("Not/AZone"))

	loc := timezone.Init("Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", loc.String())
	assert.Equal(t, loc, timezone.Location())
	assert.Equal(t, loc, timezone.Now().Location())
}

func TestFormat(t *testing.T) {
	t.Cleanup(func() { timezone.Init("UTC") })
	timezone.Init("Asia/Kolkata")

	stamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01 17:30", timezone.Format(stamp, "2006-01-02 15:04"))
	assert.Empty(t, timezone.Format(time.Time{}, time.RFC3339))
}
