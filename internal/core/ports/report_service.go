package ports

import "context"

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Report is a rendered workbook ready to be sent as an attachment.
type Report struct {
	Kind        string
	Filename    string
	ContentType string
	Data        []byte
}

// RefundReportQuery holds the optional filters of the refund workbook.
type RefundReportQuery struct {
	Status    string
	StartDate string
	EndDate   string
}

type ReportService interface {
	RefundsWorkbook(ctx context.Context, query RefundReportQuery) (*Report, error)
	DetailedWorkbook(ctx context.Context, userID string) (*Report, error)
	SummaryWorkbook(ctx context.Context) (*Report, error)
}
