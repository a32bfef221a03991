package form

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"hoso/internal/core"
)

// maxImageBytes bounds a single upload read. Larger files would blow the
// snapshot slot's quota anyway.
const maxImageBytes = 5 << 20

// EncodeDataURI encodes raw file bytes as a base64 data URI, sniffing the
// content type from the payload.
func EncodeDataURI(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func readImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("read image: empty file")
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("read image: file larger than %d bytes", maxImageBytes)
	}
	return EncodeDataURI(data), nil
}

// AttachTaxImage appends an upload to the tax-document slot, keeping only the
// newest two (oldest evicted first).
func (d *Draft) AttachTaxImage(r io.Reader) error {
	uri, err := readImage(r)
	if err != nil {
		return err
	}
	d.Record.TaxImages = core.AppendTaxImage(d.Record.TaxImages, uri)
	return nil
}

// AttachPlateImage replaces the plate image outright.
func (d *Draft) AttachPlateImage(r io.Reader) error {
	uri, err := readImage(r)
	if err != nil {
		return err
	}
	d.Record.PlateImage = uri
	return nil
}

// AttachRegistrationImage replaces the registration image outright.
func (d *Draft) AttachRegistrationImage(r io.Reader) error {
	uri, err := readImage(r)
	if err != nil {
		return err
	}
	d.Record.RegistrationImage = uri
	return nil
}
