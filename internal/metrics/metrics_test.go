package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve_CountsByStatus(t *testing.T) {
	okBefore := testutil.ToFloat64(AdapterCallsTotal.WithLabelValues("unit", "ok"))
	errBefore := testutil.ToFloat64(AdapterCallsTotal.WithLabelValues("unit", "error"))

	Observe("unit", time.Now(), nil)
	Observe("unit", time.Now(), errors.New("x"))
	Observe("unit", time.Now(), errors.New("y"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(AdapterCallsTotal.WithLabelValues("unit", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(AdapterCallsTotal.WithLabelValues("unit", "error")))
}
