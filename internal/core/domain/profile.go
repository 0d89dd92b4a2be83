package domain

import (
	"fmt"
	"math"
	"strings"
)

// State is an Indian state supported by the advisory service.
type State string

// Supported states.
const (
	StateMaharashtra   State = "Maharashtra"
	StatePunjab        State = "Punjab"
	StateUttarPradesh  State = "Uttar Pradesh"
	StateMadhyaPradesh State = "Madhya Pradesh"
	StateKarnataka     State = "Karnataka"
	StateRajasthan     State = "Rajasthan"
	StateBihar         State = "Bihar"
	StateAndhraPradesh State = "Andhra Pradesh"
	StateTamilNadu     State = "Tamil Nadu"
	StateGujarat       State = "Gujarat"
)

// CropType is the primary crop grown.
type CropType string

// Supported crop types.
const (
	CropRice       CropType = "Rice"
	CropWheat      CropType = "Wheat"
	CropSoybean    CropType = "Soybean"
	CropCotton     CropType = "Cotton"
	CropSugarcane  CropType = "Sugarcane"
	CropMaize      CropType = "Maize"
	CropVegetables CropType = "Vegetables"
	CropPulses     CropType = "Pulses"
	CropGroundnut  CropType = "Groundnut"
	CropOther      CropType = "Other"
)

// IncomeType describes how regularly income arrives.
type IncomeType string

// Supported income types.
const (
	IncomeSeasonal IncomeType = "seasonal"
	IncomeMixed    IncomeType = "mixed"
	IncomeFixed    IncomeType = "fixed"
)

// RiskExposure is a hazard the household is exposed to.
type RiskExposure string

// Supported risk exposures.
const (
	RiskDrought      RiskExposure = "drought"
	RiskCropFailure  RiskExposure = "crop_failure"
	RiskFlood        RiskExposure = "flood"
	RiskPestAttack   RiskExposure = "pest_attack"
	RiskPriceCrash   RiskExposure = "price_crash"
	RiskIllness      RiskExposure = "illness"
	RiskMarketAccess RiskExposure = "market_access"
)

// AllStates returns the supported states in display order.
func AllStates() []State {
	return []State{
		StateMaharashtra, StatePunjab, StateUttarPradesh, StateMadhyaPradesh, StateKarnataka,
		StateRajasthan, StateBihar, StateAndhraPradesh, StateTamilNadu, StateGujarat,
	}
}

// AllCropTypes returns the supported crop types in display order.
func AllCropTypes() []CropType {
	return []CropType{
		CropRice, CropWheat, CropSoybean, CropCotton, CropSugarcane,
		CropMaize, CropVegetables, CropPulses, CropGroundnut, CropOther,
	}
}

// AllIncomeTypes returns the supported income types.
func AllIncomeTypes() []IncomeType {
	return []IncomeType{IncomeSeasonal, IncomeMixed, IncomeFixed}
}

// AllRiskExposures returns the supported risk exposures in display order.
func AllRiskExposures() []RiskExposure {
	return []RiskExposure{
		RiskDrought, RiskCropFailure, RiskFlood, RiskPestAttack,
		RiskPriceCrash, RiskIllness, RiskMarketAccess,
	}
}

// Label returns the human-readable form of a risk key ("crop_failure" -> "Crop Failure").
func (r RiskExposure) Label() string {
	words := strings.Split(string(r), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// NormaliseRiskLabel converts a display label such as "Crop Failure"
// into its stored key ("crop_failure").
func NormaliseRiskLabel(label string) RiskExposure {
	fields := strings.Fields(strings.ToLower(label))
	return RiskExposure(strings.Join(fields, "_"))
}

// Profile is the durable description of a farmer household.
// It never carries the one-off loan request fields.
type Profile struct {
	Name             string         `json:"name"`
	State            State          `json:"state"`
	LandAcres        float64        `json:"land_acres"`
	CropType         CropType       `json:"crop_type"`
	IncomeType       IncomeType     `json:"income_type"`
	MonthlyIncomeINR float64        `json:"monthly_income_inr"`
	HouseholdSize    int            `json:"household_size"`
	ExistingDebtINR  float64        `json:"existing_debt_inr"`
	RiskExposure     []RiskExposure `json:"risk_exposure"`

	// ProfileImage is a base64 data URL, or nil.
	ProfileImage *string `json:"profile_image"`
}

// DefaultProfile returns the profile used before anything has been saved.
func DefaultProfile() Profile {
	return Profile{
		State:        StateMaharashtra,
		CropType:     CropSoybean,
		IncomeType:   IncomeSeasonal,
		RiskExposure: []RiskExposure{RiskDrought},
	}
}

// IsComplete reports whether the profile has both a name and an income.
func (p Profile) IsComplete() bool {
	return p.Name != "" && p.MonthlyIncomeINR != 0
}

// HasRisk reports whether the profile lists the given exposure.
func (p Profile) HasRisk(r RiskExposure) bool {
	for _, have := range p.RiskExposure {
		if have == r {
			return true
		}
	}
	return false
}

// Normalise replaces unknown enum values with their defaults, zeroes
// negative or non-finite amounts and de-duplicates the risk set, keeping
// first-seen order.
func (p Profile) Normalise() Profile {
	def := DefaultProfile()
	p.LandAcres = amount(p.LandAcres)
	p.MonthlyIncomeINR = amount(p.MonthlyIncomeINR)
	p.ExistingDebtINR = amount(p.ExistingDebtINR)
	if p.HouseholdSize < 0 {
		p.HouseholdSize = 0
	}
	if !contains(AllStates(), p.State) {
		p.State = def.State
	}
	if !contains(AllCropTypes(), p.CropType) {
		p.CropType = def.CropType
	}
	if !contains(AllIncomeTypes(), p.IncomeType) {
		p.IncomeType = def.IncomeType
	}

	known := AllRiskExposures()
	seen := make(map[RiskExposure]bool, len(p.RiskExposure))
	risks := make([]RiskExposure, 0, len(p.RiskExposure))
	for _, r := range p.RiskExposure {
		if !contains(known, r) || seen[r] {
			continue
		}
		seen[r] = true
		risks = append(risks, r)
	}
	p.RiskExposure = risks
	return p
}

// ProfileInput is what a form or request submits: the profile plus an
// optional loan request that must never be persisted.
type ProfileInput struct {
	Profile
	LoanPurpose   string   `json:"loan_purpose,omitempty"`
	LoanAmountINR *float64 `json:"loan_amount_inr,omitempty"`
}

// HasLoanRequest reports whether both loan fields are filled in.
func (in ProfileInput) HasLoanRequest() bool {
	return in.LoanPurpose != "" && in.LoanAmountINR != nil && *in.LoanAmountINR > 0
}

// Validate checks the fields the analysis form marks as required.
func (in ProfileInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.LandAcres <= 0 {
		missing = append(missing, "land_acres")
	}
	if in.MonthlyIncomeINR <= 0 {
		missing = append(missing, "monthly_income_inr")
	}
	if in.HouseholdSize <= 0 {
		missing = append(missing, "household_size")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required fields missing: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if err := in.CheckAmounts(); err != nil {
		return err
	}
	if in.LoanAmountINR != nil && !validAmount(*in.LoanAmountINR) {
		return fmt.Errorf("%w: loan_amount_inr must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// CheckAmounts rejects negative or non-finite numeric fields. Unlike
// Validate it accepts a partly filled profile.
func (p Profile) CheckAmounts() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"land_acres", p.LandAcres},
		{"monthly_income_inr", p.MonthlyIncomeINR},
		{"household_size", float64(p.HouseholdSize)},
		{"existing_debt_inr", p.ExistingDebtINR},
	}
	for _, f := range fields {
		if !validAmount(f.value) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, f.name)
		}
	}
	return nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// amount maps negative and non-finite values to zero.
func amount(v float64) float64 {
	if !validAmount(v) {
		return 0
	}
	return v
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
