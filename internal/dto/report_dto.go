package dto

// Sentinel filter values the UI sends for "no constraint". They are resolved
// in the report service and never forwarded to the store.
const (
	AllTypes      = "All Types"
	AllCategories = "All Categories"
)

type CreateReportRequest struct {
	Title       string `json:"title" form:"title"`
	TargetType  string `json:"targetType" form:"targetType"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	ContactInfo string `json:"contactInfo" form:"contactInfo"`
}

type ReportFilters struct {
	Keyword    string `query:"keyword"`
	TargetType string `query:"targetType"`
	Category   string `query:"category"`
	Status     string `query:"status"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type AddCommentRequest struct {
	Text        string `json:"text"`
	IsAnonymous bool   `json:"isAnonymous"`
}
