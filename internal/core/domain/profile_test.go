package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	assert.Empty(t, p.Name)
	assert.Equal(t, StateMaharashtra, p.State)
	assert.Equal(t, CropSoybean, p.CropType)
	assert.Equal(t, IncomeSeasonal, p.IncomeType)
	assert.Equal(t, []RiskExposure{RiskDrought}, p.RiskExposure)
	assert.Nil(t, p.ProfileImage)
	assert.False(t, p.IsComplete())
}

func TestProfile_IsComplete(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected bool
	}{
		{name: "name and income", profile: Profile{Name: "Asha", MonthlyIncomeINR: 15000}, expected: true},
		{name: "name without income", profile: Profile{Name: "Asha"}, expected: false},
		{name: "income without name", profile: Profile{MonthlyIncomeINR: 15000}, expected: false},
		{name: "empty", profile: Profile{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.profile.IsComplete())
		})
	}
}

func TestProfile_Normalise(t *testing.T) {
	p := Profile{
		State:        State("Atlantis"),
		CropType:     CropWheat,
		IncomeType:   IncomeType("weekly"),
		RiskExposure: []RiskExposure{RiskFlood, "meteor", RiskFlood, RiskIllness},
	}

	got := p.Normalise()

	assert.Equal(t, StateMaharashtra, got.State)
	assert.Equal(t, CropWheat, got.CropType)
	assert.Equal(t, IncomeSeasonal, got.IncomeType)
	assert.Equal(t, []RiskExposure{RiskFlood, RiskIllness}, got.RiskExposure)
}

func TestProfile_Normalise_NilRisksBecomeEmpty(t *testing.T) {
	got := Profile{}.Normalise()
	require.NotNil(t, got.RiskExposure)
	assert.Empty(t, got.RiskExposure)
}

func TestNormaliseRiskLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected RiskExposure
	}{
		{"Drought", RiskDrought},
		{"Crop Failure", RiskCropFailure},
		{"  Pest   Attack ", RiskPestAttack},
		{"Market Access", RiskMarketAccess},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormaliseRiskLabel(tt.label))
		})
	}
}

func TestRiskExposure_Label(t *testing.T) {
	assert.Equal(t, "Crop Failure", RiskCropFailure.Label())
	assert.Equal(t, "Drought", RiskDrought.Label())
	for _, r := range AllRiskExposures() {
		assert.Equal(t, r, NormaliseRiskLabel(r.Label()))
	}
}

func TestProfileInput_Validate(t *testing.T) {
	valid := ProfileInput{Profile: Profile{Name: "Asha", LandAcres: 2, MonthlyIncomeINR: 15000, HouseholdSize: 4}}
	require.NoError(t, valid.Validate())

	missing := ProfileInput{Profile: Profile{Name: " "}}
	err := missing.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "land_acres")
	assert.Contains(t, err.Error(), "monthly_income_inr")
	assert.Contains(t, err.Error(), "household_size")

	negative := valid
	amount := -5.0
	negative.LoanAmountINR = &amount
	assert.ErrorIs(t, negative.Validate(), ErrInvalidInput)
}

func TestProfile_Normalise_ZeroesInvalidAmounts(t *testing.T) {
	p := Profile{
		LandAcres:        math.Inf(1),
		MonthlyIncomeINR: math.NaN(),
		HouseholdSize:    -3,
		ExistingDebtINR:  -5000,
	}

	got := p.Normalise()

	assert.Zero(t, got.LandAcres)
	assert.Zero(t, got.MonthlyIncomeINR)
	assert.Zero(t, got.HouseholdSize)
	assert.Zero(t, got.ExistingDebtINR)
}

func TestProfile_CheckAmounts(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		field   string
	}{
		{name: "partial profile", profile: Profile{Name: "Asha"}},
		{name: "negative debt", profile: Profile{ExistingDebtINR: -5000}, field: "existing_debt_inr"},
		{name: "negative household", profile: Profile{HouseholdSize: -1}, field: "household_size"},
		{name: "NaN income", profile: Profile{MonthlyIncomeINR: math.NaN()}, field: "monthly_income_inr"},
		{name: "infinite land", profile: Profile{LandAcres: math.Inf(1)}, field: "land_acres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.CheckAmounts()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestProfileInput_Validate_RejectsNegativeDebt(t *testing.T) {
	in := ProfileInput{Profile: Profile{
		Name: "Asha", LandAcres: 2, MonthlyIncomeINR: 15000, HouseholdSize: 4, ExistingDebtINR: -1,
	}}

	err := in.Validate()

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "existing_debt_inr")
}

func TestProfileInput_HasLoanRequest(t *testing.T) {
	amount := 50000.0
	in := ProfileInput{LoanPurpose: "Tractor", LoanAmountINR: &amount}
	assert.True(t, in.HasLoanRequest())

	in.LoanPurpose = ""
	assert.False(t, in.HasLoanRequest())
}
