package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"hoso/internal/core"
	"hoso/internal/form"
)

type statusOption struct {
	Value    string
	Selected bool
}

// formView is the template model for the record form partial.
type formView struct {
	IsNew    bool
	ID       string
	Category string
	Sections form.Sections

	CustomerName string
	SaleStaff    string
	ReceivedDate string
	VehicleType  string
	PlateNumber  string
	VIN          string
	Statuses     []statusOption

	MicaFee         string
	ServiceFee      string
	EntryCost       string
	WithdrawalCost  string
	ExpectedRevenue string

	// Data URIs; typed so the template renders them in src attributes.
	TaxImages         []template.URL
	PlateImage        template.URL
	RegistrationImage template.URL
}

func amountField(m core.Money) string {
	if m.IsZero() {
		return ""
	}
	return strconv.FormatInt(m.Dong, 10)
}

func newFormView(d form.Draft) formView {
	r := d.Record
	v := formView{
		IsNew:    d.IsNew,
		ID:       r.ID,
		Category: string(r.Category),
		Sections: form.SectionsFor(r.Category),

		CustomerName: r.CustomerName,
		SaleStaff:    r.SaleStaff,
		ReceivedDate: r.ReceivedDate,
		VehicleType:  r.VehicleType,
		PlateNumber:  r.PlateNumber,
		VIN:          r.VIN,

		MicaFee:         amountField(r.MicaFee),
		ServiceFee:      amountField(r.ServiceFee),
		EntryCost:       amountField(r.EntryCost),
		WithdrawalCost:  amountField(r.WithdrawalCost),
		ExpectedRevenue: amountField(r.ExpectedRevenue),

		PlateImage:        template.URL(r.PlateImage),
		RegistrationImage: template.URL(r.RegistrationImage),
	}
	for _, uri := range r.TaxImages {
		v.TaxImages = append(v.TaxImages, template.URL(uri))
	}
	for _, st := range core.Statuses() {
		v.Statuses = append(v.Statuses, statusOption{
			Value:    string(st),
			Selected: st == r.Status,
		})
	}
	return v
}

// handleRecordForm renders the record form partial: a fresh draft when a
// category is requested, the stored record when an id is.
func (s *Server) handleRecordForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var draft form.Draft
	if id := sanitizeInput(r.URL.Query().Get("id")); id != "" {
		existing, ok := s.records.Get(id)
		if !ok {
			NotFoundError("không tìm thấy hồ sơ").Write(w)
			return
		}
		draft = form.EditDraft(existing)
	} else {
		category := core.Category(sanitizeInput(r.URL.Query().Get("category")))
		if !category.Valid() {
			UnprocessableEntityError("phân loại không hợp lệ").Write(w)
			return
		}
		draft = form.NewDraft(category)
	}

	if s.templates == nil {
		InternalServerError("giao diện chưa sẵn sàng").Write(w)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "record_form.html", newFormView(draft)); err != nil {
		slog.ErrorContext(r.Context(), "Record form template execution failed", "error", err, "template", "record_form.html")
		InternalServerError("lỗi hiển thị biểu mẫu").Write(w)
	}
}
