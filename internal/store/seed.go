package store

import "hoso/internal/core"

// Seed is the fixed example dataset used when no snapshot exists or the
// stored payload cannot be decoded.
func Seed() []core.VehicleRecord {
	return []core.VehicleRecord{
		{
			ID:              "1",
			CustomerName:    "Nguyễn Văn A",
			SaleStaff:       "Trần Thị B",
			ReceivedDate:    "2023-10-25",
			VehicleType:     "Honda Vision",
			Category:        core.CategoryHondaPT,
			PlateNumber:     "30H-123.45",
			Status:          core.StatusRegistrationComplete,
			Step:            4,
			MicaFee:         core.Money{Dong: 50000},
			ServiceFee:      core.Money{Dong: 500000},
			ExpectedRevenue: core.Money{Dong: 1200000},
			TaxImages:       []string{},
		},
		{
			ID:              "2",
			CustomerName:    "Trần Văn C",
			SaleStaff:       "Lê Văn D",
			ReceivedDate:    "2023-10-26",
			VehicleType:     "Toyota Vios",
			Category:        core.CategoryExternalCar,
			PlateNumber:     "29A-999.99",
			Status:          core.StatusPlateRegistration,
			Step:            3,
			MicaFee:         core.Money{Dong: 50000},
			ServiceFee:      core.Money{Dong: 1000000},
			ExpectedRevenue: core.Money{Dong: 2500000},
			TaxImages:       []string{},
		},
		{
			ID:              "3",
			CustomerName:    "Phạm Thị E",
			SaleStaff:       "Trần Tuấn Anh",
			ReceivedDate:    "2023-10-24",
			VehicleType:     "Mazda 3 2019",
			Category:        core.CategoryOldCar,
			PlateNumber:     "30G-567.89",
			Status:          core.StatusReceived,
			Step:            1,
			EntryCost:       core.Money{Dong: 450000000},
			WithdrawalCost:  core.Money{Dong: 5000000},
			ExpectedRevenue: core.Money{Dong: 475000000},
			TaxImages:       []string{},
		},
	}
}
