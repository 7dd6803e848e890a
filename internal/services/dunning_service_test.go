package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentflow/internal/models"
)

func TestNoticeStageFor(t *testing.T) {
	settings := models.DefaultDunningSettings("org_1")

	tests := []struct {
		daysPastDue int
		want        int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{6, 1},
		{7, 2},
		{13, 2},
		{14, 3},
		{29, 3},
		{30, 4},
		{365, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NoticeStageFor(settings, tt.daysPastDue),
			"daysPastDue=%d", tt.daysPastDue)
	}
}

func TestDefaultDunningSettings(t *testing.T) {
	s := models.DefaultDunningSettings("org_42")

	assert.Equal(t, "org_42", s.OrganizationID)
	assert.Equal(t, 3, s.FirstNoticeDays)
	assert.Equal(t, 7, s.SecondNoticeDays)
	assert.Equal(t, 14, s.ThirdNoticeDays)
	assert.Equal(t, 30, s.FinalNoticeDays)
	assert.True(t, s.IsActive)
}
