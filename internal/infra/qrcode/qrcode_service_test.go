package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			require.NotNil(t, svc)
		})
	}
}

func TestGenerateMissionQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	missionID := "1748779200000-00ff"
	png, err := svc.GenerateMissionQR(missionID)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestParseMissionQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	t.Run("valid payload", func(t *testing.T) {
		payload, err := json.Marshal(QRCodeData{MissionID: "1748779200000-00ff", Type: "mission"})
		require.NoError(t, err)

		missionID, err := svc.ParseMissionQR(string(payload))
		require.NoError(t, err)
		assert.Equal(t, "1748779200000-00ff", missionID)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := svc.ParseMissionQR("not json")
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		payload, err := json.Marshal(QRCodeData{MissionID: "1748779200000-00ff", Type: "coupon"})
		require.NoError(t, err)

		_, err = svc.ParseMissionQR(string(payload))
		assert.ErrorContains(t, err, "invalid QR code type")
	})

	t.Run("missing mission ID", func(t *testing.T) {
		payload, err := json.Marshal(QRCodeData{Type: "mission"})
		require.NoError(t, err)

		_, err = svc.ParseMissionQR(string(payload))
		assert.ErrorContains(t, err, "missing mission ID")
	})
}
