package service

import (
	"github.com/xuri/excelize/v2"
)

type reportStyles struct {
	header int
	total  int
	title  int
	bold   int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var (
		st  reportStyles
		err error
	)
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.total, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalFill}},
	}); err != nil {
		return st, err
	}
	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	if st.bold, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return st, err
	}
	return st, nil
}

// sheet writes into one worksheet and keeps the first error, so layout code
// can be written without checking every call.
type sheet struct {
	f      *excelize.File
	name   string
	styles reportStyles
	err    error
}

func (s *sheet) row(r int, values ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.name, cell, &values)
}

// style applies styleID to columns fromCol..toCol (1-based) of row r.
func (s *sheet) style(r, fromCol, toCol, styleID int) {
	if s.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, r)
	if err != nil {
		s.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, r)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellStyle(s.name, from, to, styleID)
}

func (s *sheet) merge(from, to string) {
	if s.err != nil {
		return
	}
	s.err = s.f.MergeCell(s.name, from, to)
}

func (s *sheet) widths(widths ...float64) {
	for i, w := range widths {
		if s.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			s.err = err
			return
		}
		s.err = s.f.SetColWidth(s.name, col, col, w)
	}
}
