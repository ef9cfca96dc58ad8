package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/qr"

	"amorlias/internal/courier"
	"amorlias/internal/label"
)

// BarcodePNG rasterises a barcode spec. Each module is Width pixels wide and
// the bars are Height pixels tall.
func BarcodePNG(spec label.BarcodeSpec) ([]byte, error) {
	if spec.Payload == "" {
		return nil, fmt.Errorf("barcode: empty payload")
	}

	var (
		bc  barcode.Barcode
		err error
	)
	switch spec.Symbology {
	case courier.CODE39:
		// full ASCII mode keeps lower-case tracking numbers encodable
		bc, err = code39.Encode(spec.Payload, false, true)
	default:
		bc, err = code128.Encode(spec.Payload)
	}
	if err != nil {
		return nil, fmt.Errorf("barcode: encode %s %q: %w", spec.Symbology, spec.Payload, err)
	}

	width := spec.Width
	if width < 1 {
		width = 1
	}
	scaled, err := barcode.Scale(bc, bc.Bounds().Dx()*width, spec.Height)
	if err != nil {
		return nil, fmt.Errorf("barcode: scale: %w", err)
	}
	return encodePNG(scaled)
}

// QRPNG rasterises a QR spec into a Size x Size image.
func QRPNG(spec label.QRSpec) ([]byte, error) {
	if spec.Payload == "" {
		return nil, fmt.Errorf("qr: empty payload")
	}
	bc, err := qr.Encode(spec.Payload, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	scaled, err := barcode.Scale(bc, spec.Size, spec.Size)
	if err != nil {
		return nil, fmt.Errorf("qr: scale: %w", err)
	}
	return encodePNG(scaled)
}

func encodePNG(bc barcode.Barcode) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, bc); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
