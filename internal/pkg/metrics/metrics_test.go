package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorRecords(t *testing.T) {
	c := New()

	c.RecordTokenIssued(2)
	c.RecordTokenIssued(3)
	c.RecordAdvance(true, 2)
	c.RecordAdvance(false, 2)
	c.RecordBooked()
	c.RecordApproved(false)
	c.RecordBackup(nil)
	c.RecordBackup(errors.New("disk full"))
	c.RecordHTTPRequest("GET", "/status", 200, 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.tokensIssued))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.queueWaiting))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.queueAdvances.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.queueAdvances.WithLabelValues("false")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.appointmentsBooked))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.appointmentsApproved.WithLabelValues("false")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.backups.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/status", "200")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordTokenIssued(1)
		c.RecordAdvance(true, 0)
		c.SetWaiting(0)
		c.RecordBooked()
		c.RecordApproved(true)
		c.RecordBackup(nil)
		c.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	})
}
