// Package expiry buckets coverage end dates into fixed day windows around
// the current day. The arithmetic is pure so both the warranty and the
// service-contract statistics share it.
package expiry

import "time"

// Counts holds the six disjoint windows. "In N days" buckets are the
// exclusive continuation of the previous window, not cumulative: an end
// date 7 days out counts in In10, not In5.
type Counts struct {
	In5    int64
	In10   int64
	In30   int64
	Last5  int64
	Last10 int64
	Last30 int64
}

// Midnight normalizes t to 00:00:00 UTC of its calendar day. All bucketing
// runs against UTC midnight so results do not depend on the deployment
// timezone.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Bucketize partitions endDates relative to now (normalized to UTC
// midnight first). Interval semantics, with m = Midnight(now):
//
//	In5    (m, m+5d]
//	In10   (m+5d, m+10d]
//	In30   (m+10d, m+30d]
//	Last5  [m-5d, m]
//	Last10 [m-10d, m-5d)
//	Last30 [m-30d, m-10d)
//
// Dates outside all windows are ignored.
func Bucketize(now time.Time, endDates []time.Time) Counts {
	m := Midnight(now)
	p5 := m.AddDate(0, 0, 5)
	p10 := m.AddDate(0, 0, 10)
	p30 := m.AddDate(0, 0, 30)
	m5 := m.AddDate(0, 0, -5)
	m10 := m.AddDate(0, 0, -10)
	m30 := m.AddDate(0, 0, -30)

	var c Counts
	for _, d := range endDates {
		d = d.UTC()
		switch {
		case d.After(m) && !d.After(p5):
			c.In5++
		case d.After(p5) && !d.After(p10):
			c.In10++
		case d.After(p10) && !d.After(p30):
			c.In30++
		case !d.Before(m5) && !d.After(m):
			c.Last5++
		case !d.Before(m10) && d.Before(m5):
			c.Last10++
		case !d.Before(m30) && d.Before(m10):
			c.Last30++
		}
	}
	return c
}

// Bucket is one {count, title, text} triple as returned by the statistics
// endpoints. Titles and texts are fixed strings owned by the callers.
type Bucket struct {
	Count int64  `json:"count"`
	Title string `json:"title"`
	Text  string `json:"text"`
}
