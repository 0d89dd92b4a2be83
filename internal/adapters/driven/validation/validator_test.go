package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidator_Profile(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "complete", data: `{"name":"Asha","land_acres":2.5,"household_size":4,"risk_exposure":["drought"],"profile_image":null}`},
		{name: "partial record", data: `{"name":"Asha"}`},
		{name: "unknown enum still passes", data: `{"state":"Narnia"}`},
		{name: "wrong type", data: `{"name":42}`, wantErr: true},
		{name: "fractional household", data: `{"household_size":2.5}`, wantErr: true},
		{name: "negative income", data: `{"monthly_income_inr":-1}`, wantErr: true},
		{name: "not an object", data: `[1,2]`, wantErr: true},
		{name: "not json", data: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(domain.KeyProfile, []byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrPersistenceRead)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_Documents(t *testing.T) {
	v := newValidator(t)

	valid := `[{"id":"d1","name":"a.pdf","size":10,"mime_type":"application/pdf","folder":"Uncategorized","uploaded_at":"2026-01-02T03:04:05Z"}]`
	assert.NoError(t, v.Validate(domain.KeyDocuments, []byte(valid)))
	assert.NoError(t, v.Validate(domain.KeyDocuments, []byte(`[]`)))

	assert.Error(t, v.Validate(domain.KeyDocuments, []byte(`[{"name":"no id"}]`)))
	assert.Error(t, v.Validate(domain.KeyDocuments, []byte(`[{"id":"d1","name":"x","risk_level":"extreme"}]`)))
	assert.Error(t, v.Validate(domain.KeyDocuments, []byte(`{"id":"d1"}`)))
}

func TestValidator_UnknownKeyPasses(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.Validate("other.key", []byte(`not even json`)))
}
