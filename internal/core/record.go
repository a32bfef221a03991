package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryHondaPT     Category = "Honda PT"
	CategoryOldCar      Category = "Xe cũ"
	CategoryExternalCar Category = "Xe ngoài"
)

const (
	StatusReceived             Status = "Hồ sơ mới tiếp nhận"
	StatusTaxPayment           Status = "Đang đóng thuế"
	StatusPlateRegistration    Status = "Đang bấm biển"
	StatusRegistrationComplete Status = "Đăng ký hoàn tất"
	StatusCompleted            Status = "Hoàn thành"
)

// MaxTaxImages caps the tax-document slot; uploading beyond it evicts the oldest.
const MaxTaxImages = 2

// DateLayout is the calendar-date format used by ReceivedDate.
const DateLayout = "2006-01-02"

type (
	// Category is a record's fixed classification, assigned at creation.
	Category string

	// Status is the workflow stage label. Step is its 1-5 numeric proxy;
	// the two are set together by the caller, never derived automatically.
	Status string

	// VehicleRecord is the sole persisted entity: one vehicle-paperwork case.
	// JSON field names match the snapshot payload verbatim.
	VehicleRecord struct {
		ID           string   `json:"id"`
		CustomerName string   `json:"customerName"`
		SaleStaff    string   `json:"saleStaff"`
		ReceivedDate string   `json:"receivedDate"` // YYYY-MM-DD
		VehicleType  string   `json:"vehicleType"`
		Category     Category `json:"category"`
		PlateNumber  string   `json:"plateNumber,omitempty"`
		VIN          string   `json:"vin,omitempty"`
		Status       Status   `json:"status"`
		Step         int      `json:"step"` // 1-5

		MicaFee         Money `json:"micaFee"`
		ServiceFee      Money `json:"serviceFee"`
		EntryCost       Money `json:"entryCost"`      // Xe cũ only
		WithdrawalCost  Money `json:"withdrawalCost"` // Xe cũ only
		ExpectedRevenue Money `json:"expectedRevenue"`

		// Images are stored inline as base64 data URIs, oldest first.
		TaxImages         []string `json:"taxImages"`
		PlateImage        string   `json:"plateImage,omitempty"`
		RegistrationImage string   `json:"registrationImage,omitempty"`
	}
)

var (
	ErrEmptyCustomerName = errors.New("empty customer name")
	ErrEmptyVehicleType  = errors.New("empty vehicle type")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidStep       = errors.New("invalid step")
	ErrTooManyTaxImages  = errors.New("too many tax images")
)

// Categories returns the three fixed categories in display order.
func Categories() []Category {
	return []Category{CategoryHondaPT, CategoryOldCar, CategoryExternalCar}
}

// Statuses returns the workflow stages in progression order.
func Statuses() []Status {
	return []Status{
		StatusReceived,
		StatusTaxPayment,
		StatusPlateRegistration,
		StatusRegistrationComplete,
		StatusCompleted,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryHondaPT, CategoryOldCar, CategoryExternalCar:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusTaxPayment, StatusPlateRegistration,
		StatusRegistrationComplete, StatusCompleted:
		return true
	}
	return false
}

// Step returns the 1-5 numeric proxy for a status, 0 for unknown values.
func (s Status) Step() int {
	for i, known := range Statuses() {
		if s == known {
			return i + 1
		}
	}
	return 0
}

func (r VehicleRecord) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrEmptyCustomerName
	}
	if strings.TrimSpace(r.VehicleType) == "" {
		return ErrEmptyVehicleType
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	if r.Step < 1 || r.Step > 5 {
		return ErrInvalidStep
	}
	if len(r.TaxImages) > MaxTaxImages {
		return ErrTooManyTaxImages
	}
	for _, m := range []Money{r.MicaFee, r.ServiceFee, r.EntryCost, r.WithdrawalCost, r.ExpectedRevenue} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Completed reports whether the record has reached the final workflow stage.
func (r VehicleRecord) Completed() bool {
	return r.Step == 5
}

// AppendTaxImage returns the tax-image sequence after adding uri, keeping only
// the newest MaxTaxImages entries (oldest evicted first).
func AppendTaxImage(images []string, uri string) []string {
	out := append(append([]string(nil), images...), uri)
	if len(out) > MaxTaxImages {
		out = out[len(out)-MaxTaxImages:]
	}
	return out
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
