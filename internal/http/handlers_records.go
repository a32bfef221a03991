package http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"hoso/internal/core"
	"hoso/internal/form"
)

// recordView is the template model for one record card.
type recordView struct {
	ID           string
	CustomerName string
	SaleStaff    string
	VehicleType  string
	Category     string
	PlateNumber  string
	ReceivedDate string
	Status       string
	Step         int
	StepPercent  int
	Completed    bool
	Profit       string
}

type bucketChip struct {
	Value  string
	Label  string
	Active bool
}

var bucketLabels = map[core.Bucket]string{
	core.BucketAll:        "Tất cả",
	core.BucketProcessing: "Đang xử lý",
	core.BucketCompleted:  "Hoàn thành",
	core.BucketPending:    "Chờ đóng thuế",
}

func bucketChips(active string) []bucketChip {
	chips := make([]bucketChip, 0, 4)
	for _, b := range core.Buckets() {
		chips = append(chips, bucketChip{
			Value:  string(b),
			Label:  bucketLabels[b],
			Active: string(b) == active,
		})
	}
	return chips
}

func newRecordView(r core.VehicleRecord) recordView {
	return recordView{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		SaleStaff:    r.SaleStaff,
		VehicleType:  r.VehicleType,
		Category:     string(r.Category),
		PlateNumber:  r.PlateNumber,
		ReceivedDate: r.ReceivedDate,
		Status:       string(r.Status),
		Step:         r.Step,
		StepPercent:  r.Step * 20,
		Completed:    r.Completed(),
		Profit:       formatDong(core.Profit(r)),
	}
}

// handleRecordList renders the filtered record list partial.
func (s *Server) handleRecordList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	query := sanitizeInput(r.URL.Query().Get("q"))
	bucket := core.Bucket(r.URL.Query().Get("bucket"))
	if bucket == "" {
		bucket = core.BucketAll
	}

	filtered := core.Filter(s.records.List(), query, bucket)

	data := struct {
		Query   string
		Bucket  string
		Records []recordView
	}{Query: query, Bucket: string(bucket)}
	for _, rec := range filtered {
		data.Records = append(data.Records, newRecordView(rec))
	}

	if s.templates == nil {
		InternalServerError("giao diện chưa sẵn sàng").Write(w)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "records.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Record list template execution failed", "error", err, "template", "records.html")
		InternalServerError("lỗi hiển thị danh sách hồ sơ").Write(w)
	}
}

// handleSaveRecord commits a record form submission: a fresh draft when no
// id is posted, a whole-record replace of the stored one otherwise.
func (s *Server) handleSaveRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseMultipartForm(12 << 20); err != nil {
		slog.ErrorContext(r.Context(), "Parse multipart form error", "error", err, "url", r.URL.Path)
		BadRequestError("biểu mẫu không hợp lệ").Write(w)
		return
	}

	var draft form.Draft
	if id := sanitizeInput(r.Form.Get("id")); id != "" {
		existing, ok := s.records.Get(id)
		if !ok {
			NotFoundError("không tìm thấy hồ sơ").Write(w)
			return
		}
		draft = form.EditDraft(existing)
	} else {
		category := core.Category(sanitizeInput(r.Form.Get("category")))
		if !category.Valid() {
			UnprocessableEntityError("phân loại không hợp lệ").Write(w)
			return
		}
		draft = form.NewDraft(category)
	}

	draft.Apply(form.Input{
		CustomerName:    sanitizeInput(r.Form.Get("customer_name")),
		SaleStaff:       sanitizeInput(r.Form.Get("sale_staff")),
		ReceivedDate:    sanitizeInput(r.Form.Get("received_date")),
		VehicleType:     sanitizeInput(r.Form.Get("vehicle_type")),
		PlateNumber:     sanitizeInput(r.Form.Get("plate_number")),
		VIN:             sanitizeInput(r.Form.Get("vin")),
		Status:          sanitizeInput(r.Form.Get("status")),
		MicaFee:         r.Form.Get("mica_fee"),
		ServiceFee:      r.Form.Get("service_fee"),
		EntryCost:       r.Form.Get("entry_cost"),
		WithdrawalCost:  r.Form.Get("withdrawal_cost"),
		ExpectedRevenue: r.Form.Get("expected_revenue"),
	})

	if err := s.attachUploads(r, &draft); err != nil {
		slog.WarnContext(r.Context(), "Upload rejected", "error", err)
		UnprocessableEntityError("tệp ảnh không hợp lệ").Write(w)
		return
	}

	record, err := draft.Commit()
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyCustomerName):
			UnprocessableEntityError("thiếu tên khách hàng").Write(w)
		case errors.Is(err, core.ErrEmptyVehicleType):
			UnprocessableEntityError("thiếu loại xe").Write(w)
		default:
			slog.ErrorContext(r.Context(), "Record validation failed", "error", err)
			UnprocessableEntityError("dữ liệu không hợp lệ").Write(w)
		}
		return
	}

	s.records.Save(r.Context(), record)

	NewHTMXResponse().
		TriggerRecordSaved(record.ID).
		TriggerRecordsRefresh().
		TriggerSuccessNotification("Đã lưu hồ sơ " + record.CustomerName).
		BodyHTML(`<div class="success">Đã lưu hồ sơ</div>`).
		Write(w)
}

// attachUploads reads the optional image uploads from the multipart form.
// Tax documents may carry several files; only the newest two are kept.
func (s *Server) attachUploads(r *http.Request, draft *form.Draft) error {
	if r.MultipartForm == nil {
		return nil
	}

	attach := func(fh *multipart.FileHeader, fn func(io.Reader) error) error {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		return fn(f)
	}

	for _, fh := range r.MultipartForm.File["tax_images"] {
		if err := attach(fh, draft.AttachTaxImage); err != nil {
			return err
		}
	}
	if files := r.MultipartForm.File["plate_image"]; len(files) > 0 {
		if err := attach(files[0], draft.AttachPlateImage); err != nil {
			return err
		}
	}
	if files := r.MultipartForm.File["registration_image"]; len(files) > 0 {
		if err := attach(files[0], draft.AttachRegistrationImage); err != nil {
			return err
		}
	}
	return nil
}

// handleDeleteRecord removes a record by id. Unknown ids get a 404; the
// store itself treats them as a no-op.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("biểu mẫu không hợp lệ").Write(w)
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if id == "" {
		BadRequestError("thiếu mã hồ sơ").Write(w)
		return
	}

	if !s.records.Delete(r.Context(), id) {
		NotFoundError("không tìm thấy hồ sơ").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerRecordDeleted(id).
		TriggerRecordsRefresh().
		TriggerSuccessNotification("Đã xóa hồ sơ").
		BodyHTML(`<div class="success">Đã xóa hồ sơ</div>`).
		Write(w)
}
