package core

import (
	"reflect"
	"testing"
)

func TestFilterIdentity(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, "", BucketAll)
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("empty query + All must return the input unchanged")
	}
}

func TestFilterQueryAndBucket(t *testing.T) {
	a := validRecord() // "Nguyễn Văn A", step 4
	b := validRecord()
	b.ID = "r2"
	b.CustomerName = "Trần Văn C"
	b.VehicleType = "Toyota Vios"
	b.PlateNumber = "29A-999.99"
	b.Status = StatusPlateRegistration
	b.Step = 3
	records := []VehicleRecord{a, b}

	cases := []struct {
		name   string
		query  string
		bucket Bucket
		want   []string // expected ids, in order
	}{
		{"name match", "Nguyễn", BucketAll, []string{"r1"}},
		{"case insensitive", "nguyễn", BucketAll, []string{"r1"}},
		{"plate match", "29A", BucketAll, []string{"r2"}},
		{"vehicle type match", "vios", BucketAll, []string{"r2"}},
		{"processing bucket", "", BucketProcessing, []string{"r1", "r2"}},
		{"completed bucket", "", BucketCompleted, nil},
		{"pending bucket", "", BucketPending, nil},
		{"combined", "Vios", BucketProcessing, []string{"r2"}},
		{"no match", "Mazda", BucketAll, nil},
		{"unknown bucket behaves like All", "", Bucket("??"), []string{"r1", "r2"}},
	}
	for _, tc := range cases {
		got := Filter(records, tc.query, tc.bucket)
		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		if len(ids) == 0 {
			ids = nil
		}
		if !reflect.DeepEqual(ids, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, ids)
		}
	}
}

func TestFilterPendingBucket(t *testing.T) {
	r := validRecord()
	r.Status = StatusTaxPayment
	r.Step = 2
	got := Filter([]VehicleRecord{r}, "", BucketPending)
	if len(got) != 1 {
		t.Fatalf("tax-payment record should match Pending")
	}
	got = Filter([]VehicleRecord{validRecord()}, "", BucketPending)
	if len(got) != 0 {
		t.Fatalf("non tax-payment record must not match Pending")
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, "", BucketProcessing)
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Fatalf("order not preserved: %+v", got)
	}
}
