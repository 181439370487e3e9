package report

import (
	"strings"
	"time"

	"github.com/fcinventory/backend/internal/domain/report"
	"github.com/fcinventory/backend/internal/domain/shared"
)

// SummaryQuery holds the sales summary query parameters
type SummaryQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	StaffID   *int64 `form:"staff_id"`
}

// dateLayouts are tried in order when parsing a date bound
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", report.DateKeyLayout}

// ToFilter parses the query into a summary filter. Date-only bounds mean midnight UTC.
func (q SummaryQuery) ToFilter() (report.SummaryFilter, error) {
	var filter report.SummaryFilter
	start, err := parseBound("start_date", q.StartDate)
	if err != nil {
		return filter, err
	}
	end, err := parseBound("end_date", q.EndDate)
	if err != nil {
		return filter, err
	}
	filter.StartDate = start
	filter.EndDate = end
	filter.StaffID = q.StaffID
	return filter, nil
}

func parseBound(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, shared.NewDomainError("INVALID_DATE", name+" must be YYYY-MM-DD or an RFC 3339 timestamp")
}
