// Package export 生成 xlsx 报表
package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Sheet 一个工作表：表头 + 字符串行
type Sheet struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Build 第一个 sheet 复用默认的 Sheet1
func Build(sheets ...Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Title); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", s.Title, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	for r, row := range append([][]string{s.Header}, s.Rows...) {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(s.Title, cell, val); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", s.Title, cell, err)
			}
		}
	}
	if len(s.Header) == 0 {
		return nil
	}

	last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
	_ = f.SetCellStyle(s.Title, "A1", last, headerStyle)
	_ = f.AutoFilter(s.Title, "A1:"+last, nil)
	_ = f.SetPanes(s.Title, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	// 列宽：表头和前 50 行的最大字符数，限制在 [12, 50]
	for c := range s.Header {
		width := utf8.RuneCountInString(s.Header[c])
		for r := 0; r < len(s.Rows) && r < 50; r++ {
			if c < len(s.Rows[r]) {
				if n := utf8.RuneCountInString(s.Rows[r][c]); n > width {
					width = n
				}
			}
		}
		w := float64(width) * 1.1
		w = max(12, min(50, w))
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(s.Title, col, col, w)
	}
	return nil
}
