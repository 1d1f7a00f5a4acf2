package sync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

func TestSubstituteDeviceVars(t *testing.T) {
	d := &models.Device{
		Number:      "DEV-001",
		Phone:       "+4912345",
		Description: "warehouse scanner",
		Custom1:     "c1",
	}

	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "no placeholders",
			value:    "plain value",
			expected: "plain value",
		},
		{
			name:     "identifier",
			value:    "id=${deviceId}",
			expected: "id=DEV-001",
		},
		{
			name:     "multiple tokens",
			value:    "${deviceId}/${phone}/${description}",
			expected: "DEV-001/+4912345/warehouse scanner",
		},
		{
			name:     "unset fields become empty, never literal",
			value:    "a=${custom2},b=${custom3}",
			expected: "a=,b=",
		},
		{
			name:     "repeated token",
			value:    "${custom1}-${custom1}",
			expected: "c1-c1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SubstituteDeviceVars(tc.value, d))
		})
	}
}

func TestSubstituteDeviceVarsTotal(t *testing.T) {
	// a device with mostly unset fields against all six tokens
	d := &models.Device{Number: "DEV-002"}

	value := "${deviceId} ${phone} ${description} ${custom1} ${custom2} ${custom3}"
	got := SubstituteDeviceVars(value, d)

	for _, token := range []string{
		TokenDeviceID, TokenPhone, TokenDescription,
		TokenCustom1, TokenCustom2, TokenCustom3,
	} {
		assert.False(t, strings.Contains(got, token), "token %s left unresolved", token)
	}
	assert.Equal(t, "DEV-002     ", got)
}
