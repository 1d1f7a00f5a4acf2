package sync

import (
	"strings"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

// Device placeholders recognized inside application setting values and
// variable file content.
const (
	TokenDeviceID    = "${deviceId}"
	TokenPhone       = "${phone}"
	TokenDescription = "${description}"
	TokenCustom1     = "${custom1}"
	TokenCustom2     = "${custom2}"
	TokenCustom3     = "${custom3}"
)

// SubstituteDeviceVars replaces every recognized device placeholder in value.
// Substitution is total: a token for an unset device field becomes the empty
// string, it is never left literal.
func SubstituteDeviceVars(value string, d *models.Device) string {
	if !strings.Contains(value, "${") {
		return value
	}

	r := strings.NewReplacer(
		TokenDeviceID, d.Number,
		TokenPhone, d.Phone,
		TokenDescription, d.Description,
		TokenCustom1, d.Custom1,
		TokenCustom2, d.Custom2,
		TokenCustom3, d.Custom3,
	)

	return r.Replace(value)
}
