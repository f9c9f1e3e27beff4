package job

import (
	"testing"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCheckSalaryRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		wantErr  bool
	}{
		{"both absent", nil, nil, false},
		{"only min", ptr(5000), nil, false},
		{"only max", nil, ptr(5000), false},
		{"equal bounds", ptr(5000), ptr(5000), false},
		{"min above max", ptr(9000), ptr(5000), true},
		{"negative", ptr(-1), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Job{SalaryMin: tt.min, SalaryMax: tt.max}
			err := j.CheckSalaryRange()
			if tt.wantErr {
				assert.True(t, errx.IsCode(err, CodeInvalidSalaryRange))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	j := Job{Status: JobStatusDraft}

	assert.True(t, errx.IsCode(j.Pause(), CodeInvalidTransition))
	require.NoError(t, j.Activate())
	assert.True(t, j.IsActive())
	assert.True(t, errx.IsCode(j.Activate(), CodeInvalidTransition))

	require.NoError(t, j.ChangeStatus(JobStatusPaused))
	assert.Equal(t, JobStatusPaused, j.Status)
	require.NoError(t, j.ChangeStatus(JobStatusActive))

	require.NoError(t, j.Close())
	assert.True(t, errx.IsCode(j.Activate(), CodeInvalidTransition))
	assert.True(t, errx.IsCode(j.Close(), CodeInvalidTransition))
	assert.True(t, errx.IsCode(j.ChangeStatus(JobStatusDraft), CodeInvalidTransition))
	assert.True(t, errx.IsCode(j.ChangeStatus("archived"), CodeInvalidStatus))
}

func TestRequirement(t *testing.T) {
	j := Job{
		Description:     "Build APIs",
		Requirements:    "Go, PostgreSQL",
		ExperienceLevel: LevelSenior,
		Location:        "Lisbon",
		RemoteWork:      true,
		SalaryMin:       ptr(4000),
	}
	req := j.Requirement()
	assert.Equal(t, scoring.LevelSenior, req.ExperienceLevel)
	assert.Equal(t, "Go, PostgreSQL", req.Requirements)
	assert.True(t, req.RemoteWork)
	assert.Equal(t, 4000.0, *req.SalaryMin)
	assert.Nil(t, req.SalaryMax)
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "USD", NormalizeCurrency(""))
	assert.Equal(t, "BRL", NormalizeCurrency(" brl "))
}
