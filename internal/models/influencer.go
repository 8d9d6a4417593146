// internal/models/influencer.go
package models

// InfluencerRecord is one row of the influencer table. JSON names match the
// table columns so the serialised rows read like the source file.
type InfluencerRecord struct {
	ID                 int     `json:"id"`
	Username           string  `json:"username"`
	FullName           string  `json:"full_name"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	Email              string  `json:"email"`
	Country            string  `json:"country"`
	Category           string  `json:"category"`
	Followers          int64   `json:"followers"`
	Engagement         float64 `json:"engagement"`
	AvgLikes           int64   `json:"avg_likes"`
	AvgComments        int64   `json:"avg_comments"`
	FollowerGrowthRate float64 `json:"follower_growth_rate"`
}

// Column names of the influencer table, in canonical order.
const (
	ColumnID                 = "id"
	ColumnUsername           = "username"
	ColumnFullName           = "full_name"
	ColumnAge                = "age"
	ColumnGender             = "gender"
	ColumnEmail              = "email"
	ColumnCountry            = "country"
	ColumnCategory           = "category"
	ColumnFollowers          = "followers"
	ColumnEngagement         = "engagement"
	ColumnAvgLikes           = "avg_likes"
	ColumnAvgComments        = "avg_comments"
	ColumnFollowerGrowthRate = "follower_growth_rate"
)

// InfluencerColumns lists every column a data file must provide.
var InfluencerColumns = []string{
	ColumnID, ColumnUsername, ColumnFullName, ColumnAge, ColumnGender,
	ColumnEmail, ColumnCountry, ColumnCategory, ColumnFollowers,
	ColumnEngagement, ColumnAvgLikes, ColumnAvgComments, ColumnFollowerGrowthRate,
}

// InfluencerSet is an ordered, read-only collection of records.
type InfluencerSet []InfluencerRecord

// Categories returns the distinct categories in first-seen order.
func (s InfluencerSet) Categories() []string {
	seen := make(map[string]struct{}, len(s))
	var out []string
	for _, r := range s {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

// HasCategory reports whether any record belongs to category.
func (s InfluencerSet) HasCategory(category string) bool {
	for _, r := range s {
		if r.Category == category {
			return true
		}
	}
	return false
}

// FilterByCategory returns the records whose category equals category exactly.
func (s InfluencerSet) FilterByCategory(category string) InfluencerSet {
	var out InfluencerSet
	for _, r := range s {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Limit returns at most n records; n <= 0 means no limit.
func (s InfluencerSet) Limit(n int) InfluencerSet {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
