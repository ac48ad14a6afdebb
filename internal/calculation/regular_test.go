package calculation

import (
	"testing"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regularInput(e *domain.Employee) RegularDeterminationInput {
	company := testCompany()
	return RegularDeterminationInput{
		Employee:      e,
		Company:       &company,
		HealthGrades:  testHealthGrades(),
		PensionGrades: testPensionGrades(),
		Year:          2025,
	}
}

func TestAverageMonthlyRemuneration(t *testing.T) {
	e := regularEmployee("E1", date(1985, 3, 10))
	e.Incomes = []domain.IncomeRecord{
		income("2025-03", 500000, 20),
		income("2025-04", 300000, 20),
		income("2025-05", 310000, 18),
		income("2025-06", 320000, 10), // below the floor
	}

	result, err := AverageMonthlyRemuneration(regularInput(&e))
	require.NoError(t, err)
	assert.Equal(t, []dateutil.YearMonth{ym("2025-04"), ym("2025-05")}, result.QualifyingMonths)
	assert.Equal(t, int64(305000), result.AverageRemuneration)
	assert.Equal(t, 22, result.HealthGrade)
	assert.Equal(t, 19, result.PensionGrade)
	assert.Equal(t, int64(300000), result.StandardMonthlyAmount)
	assert.Equal(t, ym("2025-09"), result.EffectiveFrom)
	assert.Equal(t, WorkDayFloorStandard, result.WorkDayFloor)
}

func TestAverageMonthlyRemuneration_NoQualifyingMonths(t *testing.T) {
	e := regularEmployee("E1", date(1985, 3, 10))
	e.Incomes = []domain.IncomeRecord{income("2025-04", 300000, 5)}

	_, err := AverageMonthlyRemuneration(regularInput(&e))
	assert.ErrorIs(t, err, ErrNoQualifyingMonths)
	assert.True(t, IsNotComputable(err))
}

func TestAverageMonthlyRemuneration_ShortTimeFloor(t *testing.T) {
	e := partTimer("P1", 25, 120000)
	e.Incomes = []domain.IncomeRecord{
		income("2025-04", 120000, 12),
		income("2025-05", 120000, 12),
		income("2025-06", 120000, 12),
	}

	result, err := AverageMonthlyRemuneration(regularInput(&e))
	require.NoError(t, err)
	assert.Len(t, result.QualifyingMonths, 3)
	assert.Equal(t, WorkDayFloorShortTime, result.WorkDayFloor)
	assert.Equal(t, 8, result.HealthGrade) // 118,000
}
