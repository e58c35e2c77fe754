package imagehost

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 250

// RenderQRCode encodes content as a PNG QR code.
func RenderQRCode(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// UploadQRCode renders content as a QR code and stores it at a stable key for the
// photo, replacing any previous code.
func (s *Store) UploadQRCode(ctx context.Context, photoID, content string) (*Upload, error) {
	png, err := RenderQRCode(content)
	if err != nil {
		return nil, err
	}
	return s.Put(ctx, FolderQRCodes+"/"+photoID+".png", png, "image/png")
}
