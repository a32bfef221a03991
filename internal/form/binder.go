// Package form turns a (category, optional existing record) pair into an
// editable draft and a submitted draft back into a committed record.
package form

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hoso/internal/core"
)

// Draft is the in-progress form state before commit to the store.
type Draft struct {
	Record core.VehicleRecord
	IsNew  bool
}

// Sections describes which form sections a category exposes.
type Sections struct {
	// Costs is the entry/withdrawal cost pair plus the plate-number field
	// in the general section (Xe cũ only).
	Costs bool
	// Fees is the mica/service fee pair.
	Fees bool
	// Documents is the upload section: tax images, plate image,
	// registration image.
	Documents bool
}

// SectionsFor returns the field visibility policy for a category. Xe cũ
// exposes the cost fields and hides document uploads; the other categories
// expose fees and uploads and hide costs.
func SectionsFor(c core.Category) Sections {
	if c == core.CategoryOldCar {
		return Sections{Costs: true}
	}
	return Sections{Fees: true, Documents: true}
}

// NewDraft starts a fresh record in the given category with a newly generated
// id and default field values. The category is fixed from here on.
func NewDraft(category core.Category) Draft {
	return Draft{
		IsNew: true,
		Record: core.VehicleRecord{
			ID:           uuid.NewString(),
			ReceivedDate: time.Now().Format(core.DateLayout),
			Category:     category,
			Status:       core.StatusReceived,
			Step:         1,
			TaxImages:    []string{},
		},
	}
}

// EditDraft copies an existing record into a draft. ID and category are
// preserved and not editable.
func EditDraft(r core.VehicleRecord) Draft {
	if r.TaxImages == nil {
		r.TaxImages = []string{}
	}
	return Draft{Record: r}
}

// Input carries the raw submitted field values. Amounts are free text; the
// binder coerces them.
type Input struct {
	CustomerName string
	SaleStaff    string
	ReceivedDate string
	VehicleType  string
	PlateNumber  string
	VIN          string
	Status       string

	MicaFee         string
	ServiceFee      string
	EntryCost       string
	WithdrawalCost  string
	ExpectedRevenue string
}

// Apply writes the submitted values into the draft. Amount fields are applied
// only for the sections the draft's category exposes; each one is coerced to
// a non-negative integer, defaulting to 0, so a bad digit never fails the
// form. Status updates carry the matching step with them.
func (d *Draft) Apply(in Input) {
	r := &d.Record
	r.CustomerName = strings.TrimSpace(in.CustomerName)
	r.SaleStaff = strings.TrimSpace(in.SaleStaff)
	r.VehicleType = strings.TrimSpace(in.VehicleType)
	r.PlateNumber = strings.TrimSpace(in.PlateNumber)
	r.VIN = strings.TrimSpace(in.VIN)

	if date := strings.TrimSpace(in.ReceivedDate); core.ValidDate(date) {
		r.ReceivedDate = date
	}

	if s := core.Status(strings.TrimSpace(in.Status)); s.Valid() {
		r.Status = s
		r.Step = s.Step()
	}

	sections := SectionsFor(r.Category)
	if sections.Fees {
		r.MicaFee = core.ParseAmount(in.MicaFee)
		r.ServiceFee = core.ParseAmount(in.ServiceFee)
	}
	if sections.Costs {
		r.EntryCost = core.ParseAmount(in.EntryCost)
		r.WithdrawalCost = core.ParseAmount(in.WithdrawalCost)
	}
	r.ExpectedRevenue = core.ParseAmount(in.ExpectedRevenue)
}

// Commit validates the draft and returns the complete record for the store.
// The only user-visible validation is the two required text fields; anything
// else was already normalized by Apply.
func (d *Draft) Commit() (core.VehicleRecord, error) {
	if err := d.Record.Validate(); err != nil {
		return core.VehicleRecord{}, err
	}
	return d.Record, nil
}
