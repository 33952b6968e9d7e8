package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateMissionQR generates a QR code PNG encoding a mission join link.
	GenerateMissionQR(missionID string) ([]byte, error)

	// ParseMissionQR parses QR code data and returns the mission ID.
	ParseMissionQR(qrData string) (string, error)
}
