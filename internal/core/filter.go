package core

import "strings"

const (
	BucketAll        Bucket = "All"
	BucketProcessing Bucket = "Processing"
	BucketCompleted  Bucket = "Completed"
	BucketPending    Bucket = "Pending"
)

// Bucket selects records by workflow progress.
type Bucket string

// Buckets returns the filter chips in display order.
func Buckets() []Bucket {
	return []Bucket{BucketAll, BucketProcessing, BucketCompleted, BucketPending}
}

// Matches reports whether r falls into the bucket. Processing means step < 5,
// Completed step == 5, Pending is the tax-payment stage. Unknown buckets
// behave like All.
func (b Bucket) Matches(r VehicleRecord) bool {
	switch b {
	case BucketProcessing:
		return r.Step < 5
	case BucketCompleted:
		return r.Step == 5
	case BucketPending:
		return r.Status == StatusTaxPayment
	default:
		return true
	}
}

// Filter returns the records matching both the free-text query and the
// bucket, preserving input order. The query is a case-insensitive substring
// match against customer name, plate number and vehicle type; an empty query
// matches everything.
func Filter(records []VehicleRecord, query string, bucket Bucket) []VehicleRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]VehicleRecord, 0, len(records))
	for _, r := range records {
		if !bucket.Matches(r) {
			continue
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r VehicleRecord, q string) bool {
	return strings.Contains(strings.ToLower(r.CustomerName), q) ||
		strings.Contains(strings.ToLower(r.PlateNumber), q) ||
		strings.Contains(strings.ToLower(r.VehicleType), q)
}
