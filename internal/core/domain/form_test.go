package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValuesValidate(t *testing.T) {
	tests := []struct {
		name    string
		values  FormValues
		want    PropertyInput
		wantErr bool
	}{
		{
			name:   "valid values are trimmed and parsed",
			values: FormValues{Address: "  12 Main St ", Price: "150000", Size: " 72.5 ", Description: " sunny "},
			want:   PropertyInput{Address: "12 Main St", Price: 150000, Size: 72.5, Description: "sunny"},
		},
		{
			name:   "negative numbers are accepted",
			values: FormValues{Address: "A", Price: "-1", Size: "-2"},
			want:   PropertyInput{Address: "A", Price: -1, Size: -2},
		},
		{name: "empty address", values: FormValues{Address: "   ", Price: "1", Size: "1"}, wantErr: true},
		{name: "zero price", values: FormValues{Address: "A", Price: "0", Size: "1"}, wantErr: true},
		{name: "zero size", values: FormValues{Address: "A", Price: "1", Size: "0.0"}, wantErr: true},
		{name: "price is not a number", values: FormValues{Address: "A", Price: "abc", Size: "1"}, wantErr: true},
		{name: "empty size", values: FormValues{Address: "A", Price: "1", Size: ""}, wantErr: true},
		{name: "infinite price", values: FormValues{Address: "A", Price: "Inf", Size: "1"}, wantErr: true},
		{name: "negative infinite size", values: FormValues{Address: "A", Price: "1", Size: "-Infinity"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.values.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormMode(t *testing.T) {
	create := CreateMode()
	assert.False(t, create.IsEdit())
	assert.Equal(t, "Create property", create.Title())
	assert.Equal(t, "Save", create.SubmitLabel())
	assert.False(t, create.ShowCancel())
	assert.Equal(t, "create", create.String())

	edit := EditMode(7)
	id, ok := edit.EditID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "Edit property", edit.Title())
	assert.Equal(t, "Update", edit.SubmitLabel())
	assert.True(t, edit.ShowCancel())
	assert.Equal(t, "edit:7", edit.String())
}

func TestFormValuesFromProperty(t *testing.T) {
	values := FormValuesFromProperty(Property{ID: 3, Address: "B", Price: 1500.5, Size: 40, Description: "d"})
	assert.Equal(t, FormValues{Address: "B", Price: "1500.5", Size: "40", Description: "d"}, values)
}

func TestParseBound(t *testing.T) {
	assert.Nil(t, ParseBound(""))
	assert.Nil(t, ParseBound("  "))
	assert.Nil(t, ParseBound("ten"))
	assert.Nil(t, ParseBound("NaN"))
	assert.Nil(t, ParseBound("Inf"))

	v := ParseBound(" 0 ")
	require.NotNil(t, v)
	assert.Equal(t, 0.0, *v)

	v = ParseBound("12.5")
	require.NotNil(t, v)
	assert.Equal(t, "12.5", FormatBound(v))
	assert.Equal(t, "", FormatBound(nil))
	assert.False(t, math.IsNaN(*v))
}
