package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordEngagement(t *testing.T) {
	before := testutil.ToFloat64(EngagementActionsTotal.WithLabelValues("like", "add"))
	RecordEngagement("like", "add")
	assert.Equal(t, before+1, testutil.ToFloat64(EngagementActionsTotal.WithLabelValues("like", "add")))
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(NotificationsTotal.WithLabelValues("LIKE", "duplicate"))
	RecordNotification("LIKE", "duplicate")
	assert.Equal(t, before+1, testutil.ToFloat64(NotificationsTotal.WithLabelValues("LIKE", "duplicate")))
}
