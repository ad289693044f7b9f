package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

const (
	ReportRefunds  = "refunds"
	ReportDetailed = "refunds_detailed"
	ReportSummary  = "summary"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
	headerFill     = "366092"
	totalFill      = "FFE6E6"
	missingOwner   = "N/A"
)

// ReportService renders refund data as XLSX workbooks. When an archive is
// configured every rendered workbook is also stored there.
type ReportService struct {
	refunds ports.RefundRepository
	users   ports.UserRepository
	stats   ports.StatsRepository
	archive ports.ReportArchive
	logger  zerolog.Logger
	now     func() time.Time
}

func NewReportService(
	refunds ports.RefundRepository,
	users ports.UserRepository,
	stats ports.StatsRepository,
	archive ports.ReportArchive,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		refunds: refunds,
		users:   users,
		stats:   stats,
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// RefundsWorkbook lists refunds matching the optional status and date
// bounds, followed by a total row.
func (s *ReportService) RefundsWorkbook(ctx context.Context, query ports.RefundReportQuery) (*ports.Report, error) {
	var filter domain.RefundFilter
	if query.Status != "" {
		st, err := domain.ParseRefundStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}
	from, to, err := parseDateRange(query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}
	filter.From, filter.To = from, to

	refunds, owners, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, ReportRefunds, "Refunds", func(sh *sheet) {
		sh.widths(38, 40, 15, 12, 25, 30, 15, 15)
		sh.row(1, "ID", "Descrição", "Valor (R$)", "Status", "Usuário", "Email", "Data Criação", "Data Atualização")
		sh.style(1, 1, 8, sh.styles.header)

		total := decimal.Zero
		r := 2
		for _, rf := range refunds {
			name, email := owners.lookup(rf.UserID)
			sh.row(r, rf.ID, rf.Description, formatMoney(rf.Amount), string(rf.Status), name, email,
				rf.CreatedAt.UTC().Format(dateLayout), rf.UpdatedAt.UTC().Format(dateLayout))
			total = total.Add(rf.Amount)
			r++
		}

		r++
		sh.row(r, "", "TOTAL", formatMoney(total))
		sh.style(r, 1, 8, sh.styles.total)
	})
}

// DetailedWorkbook lists refunds, optionally for one user, with their age in
// days and a statistics block.
func (s *ReportService) DetailedWorkbook(ctx context.Context, userID string) (*ports.Report, error) {
	var filter domain.RefundFilter
	if userID != "" {
		if !validID(userID) {
			return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
		}
		filter.UserID = userID
	}

	refunds, owners, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return s.render(ctx, ReportDetailed, "Relatório Detalhado", func(sh *sheet) {
		sh.widths(38, 40, 15, 12, 25, 30, 15, 18)
		sh.row(1, "Relatório Detalhado de Reembolsos")
		sh.merge("A1", "H1")
		sh.style(1, 1, 1, sh.styles.title)
		sh.row(2, "Gerado em: "+now.Format(dateTimeLayout))

		sh.row(4, "ID", "Descrição", "Valor", "Status", "Usuário", "Email", "Criado em", "Dias desde criação")
		sh.style(4, 1, 8, sh.styles.header)

		counts := map[domain.RefundStatus]int{}
		total := decimal.Zero
		r := 5
		for _, rf := range refunds {
			name, email := owners.lookup(rf.UserID)
			sh.row(r, rf.ID, rf.Description, formatMoney(rf.Amount), string(rf.Status), name, email,
				rf.CreatedAt.UTC().Format(dateLayout), fmt.Sprintf("%d dias", rf.DaysSinceCreation(now)))
			counts[rf.Status]++
			total = total.Add(rf.Amount)
			r++
		}

		r++
		sh.row(r, "ESTATÍSTICAS")
		sh.style(r, 1, 1, sh.styles.bold)
		sh.row(r+1, "Total de reembolsos:", len(refunds))
		sh.row(r+2, "Valor total:", formatMoney(total))
		sh.row(r+3, "Pendentes:", counts[domain.RefundPending])
		sh.row(r+4, "Aprovados:", counts[domain.RefundApproved])
		sh.row(r+5, "Rejeitados:", counts[domain.RefundRejected])
	})
}

// SummaryWorkbook reports entity counts and refund totals per status.
func (s *ReportService) SummaryWorkbook(ctx context.Context) (*ports.Report, error) {
	counts, err := s.stats.RefundCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary report: %w", err)
	}
	users, err := s.stats.UserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary report: %w", err)
	}
	clients, err := s.stats.ClientStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary report: %w", err)
	}

	now := s.now().UTC()
	return s.render(ctx, ReportSummary, "Resumo", func(sh *sheet) {
		sh.widths(30, 15, 20, 15)
		sh.row(1, "Resumo Geral do Sistema")
		sh.merge("A1", "D1")
		sh.style(1, 1, 1, sh.styles.title)

		sh.row(3, "DADOS GERAIS")
		sh.style(3, 1, 1, sh.styles.bold)
		sh.row(4, "Total de Usuários", users.TotalUsers)
		sh.row(5, "Total de Clientes", clients.TotalClients)
		sh.row(6, "Total de Reembolsos", counts.Total)
		sh.row(7, "Valor Total", formatMoney(counts.Sum))

		sh.row(9, "REEMBOLSOS POR STATUS")
		sh.style(9, 1, 1, sh.styles.bold)
		sh.row(10, "Status", "Quantidade", "Valor Total")
		sh.style(10, 1, 3, sh.styles.header)

		r := 11
		for _, st := range domain.RefundStatuses {
			count, sum := int64(0), decimal.Zero
			for _, t := range counts.ByStatus {
				if t.Status == st {
					count, sum = t.Count, t.Sum
				}
			}
			sh.row(r, string(st), count, formatMoney(sum))
			r++
		}

		sh.row(r+1, "Gerado em: "+now.Format(dateTimeLayout))
	})
}

func (s *ReportService) load(ctx context.Context, filter domain.RefundFilter) ([]domain.Refund, ownerIndex, error) {
	refunds, err := s.refunds.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("load refunds: %w", err)
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load users: %w", err)
	}

	owners := make(ownerIndex, len(users))
	for i := range users {
		owners[users[i].ID] = &users[i]
	}
	return refunds, owners, nil
}

// render builds a single-sheet workbook, serialises it and hands a copy to
// the archive.
func (s *ReportService) render(ctx context.Context, kind, sheetName string, fill func(*sheet)) (*ports.Report, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}
	styles, err := newReportStyles(f)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}

	sh := &sheet{f: f, name: sheetName, styles: styles}
	fill(sh)
	if sh.err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, sh.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}

	report := &ports.Report{
		Kind:        kind,
		Filename:    fmt.Sprintf("%s_%d.xlsx", kind, s.now().UnixMilli()),
		ContentType: ports.XLSXContentType,
		Data:        buf.Bytes(),
	}

	if s.archive != nil {
		if err := s.archive.Store(ctx, report); err != nil {
			s.logger.Warn().Err(err).Str("report", report.Filename).Msg("failed to archive report")
		}
	}

	s.logger.Info().Str("report", report.Filename).Int("bytes", len(report.Data)).Msg("report generated")
	return report, nil
}

type ownerIndex map[string]*domain.User

func (o ownerIndex) lookup(userID string) (name, email string) {
	if u, ok := o[userID]; ok {
		return u.Name, u.Email
	}
	return missingOwner, missingOwner
}

func formatMoney(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
