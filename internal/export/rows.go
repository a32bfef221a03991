package export

import "hoso/internal/core"

var reportHeader = []interface{}{
	"Mã hồ sơ",
	"Khách hàng",
	"Nhân viên sale",
	"Ngày nhận",
	"Loại xe",
	"Phân loại",
	"Biển số",
	"Trạng thái",
	"Phí mica",
	"Phí dịch vụ",
	"Chi phí nhập",
	"Chi phí rút",
	"Doanh thu dự kiến",
	"Lợi nhuận",
}

// RecordRows builds the report rows, header first. Amounts are written as
// plain dong integers so the sheet can sum them.
func RecordRows(records []core.VehicleRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, reportHeader)
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID,
			r.CustomerName,
			r.SaleStaff,
			r.ReceivedDate,
			r.VehicleType,
			string(r.Category),
			r.PlateNumber,
			string(r.Status),
			r.MicaFee.Dong,
			r.ServiceFee.Dong,
			r.EntryCost.Dong,
			r.WithdrawalCost.Dong,
			r.ExpectedRevenue.Dong,
			core.Profit(r).Dong,
		})
	}
	return rows
}
