package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCountry(t *testing.T) {
	tests := []struct {
		name    string
		country string
		wantErr bool
		errMsg  string
	}{
		{name: "simple name", country: "Canada"},
		{name: "name with space", country: "New Zealand"},
		{name: "name with comma and dots", country: "Korea, Dem. Rep."},
		{name: "name with apostrophe", country: "Cote d'Ivoire"},
		{name: "name with hyphen", country: "Guinea-Bissau"},
		{name: "accented name", country: "Réunion"},
		{name: "empty", country: "", wantErr: true, errMsg: "country cannot be empty"},
		{
			name:    "too long",
			country: strings.Repeat("a", 101),
			wantErr: true,
			errMsg:  "country too long (max 100 characters)",
		},
		{
			name:    "html",
			country: "Canada<script>",
			wantErr: true,
			errMsg:  "country contains invalid characters",
		},
		{
			name:    "sql comment",
			country: "Canada'; DROP TABLE countries; --",
			wantErr: true,
			errMsg:  "country contains invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCountry(tt.country)
			if tt.wantErr {
				assert.EqualError(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContinent(t *testing.T) {
	for _, c := range []string{"", "Todos", "all", "Africa", "Americas", "Asia", "Europe", "Oceania"} {
		assert.NoError(t, ValidateContinent(c), c)
	}
	assert.Error(t, ValidateContinent("Antarctica"))
	assert.Error(t, ValidateContinent("asia"))
}

func TestValidateMeasure(t *testing.T) {
	assert.NoError(t, ValidateMeasure("lifeExp"))
	assert.NoError(t, ValidateMeasure("pop"))
	assert.NoError(t, ValidateMeasure("gdpPercap"))
	assert.Error(t, ValidateMeasure("year"))
	assert.Error(t, ValidateMeasure(""))
}
