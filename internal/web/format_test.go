package web

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/storeadmin/internal/core"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0", "$0.00"},
		{"5", "$0.05"},
		{"1250", "$12.50"},
		{"123456789", "$1,234,567.89"},
		{"9223372036854775807", "$92,233,720,368,547,758.07"},
		{"900719925474099317", "$9,007,199,254,740,993.17"},
		{"12.5", "12.5"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCents(tt.in), tt.in)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$49.99", formatMoney("49.99"))
	assert.Equal(t, "$1,000.00", formatMoney("1000"))
	assert.Equal(t, "$0.01", formatMoney("0.005"))
	assert.Equal(t, "-$3.50", formatMoney("-3.5"))
	assert.Equal(t, "n/a", formatMoney("n/a"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Dec 25, 2023", formatDate("2023-12-25"))
	assert.Equal(t, "", formatDate(""))
	assert.Equal(t, "soon", formatDate("soon"))
}

func TestFormatCell(t *testing.T) {
	labels := map[string]string{"1": "Active", "2": "Inactive"}

	status := formatCell(core.ListColumn{Label: "Status", Format: core.FormatStatus, Labels: labels}, "2")
	assert.Equal(t, "status", status.Kind)
	assert.Equal(t, "Inactive", status.Value)
	assert.Equal(t, "inactive", status.Class)

	unknown := formatCell(core.ListColumn{Format: core.FormatStatus, Labels: labels}, "9")
	assert.Equal(t, "9", unknown.Value)

	img := formatCell(core.ListColumn{Format: core.FormatImage}, "https://example.com/a.png")
	assert.Equal(t, "image", img.Kind)
	assert.Equal(t, "https://example.com/a.png", img.Value)

	name := formatCell(core.ListColumn{Name: "name", Label: "Name"}, "Shoes")
	assert.Equal(t, "text", name.Kind)
	assert.Equal(t, "Name", name.Label)
	assert.Equal(t, "Shoes", name.Value)
}
