package extract

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readExcel extracts one logical page per worksheet. Each row is rendered as
// pipe-joined cell values; blank rows are dropped.
func readExcel(path string) (string, map[int]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	pages := make(map[int]string)
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		var lines []string
		for _, row := range rows {
			line := strings.Join(row, " | ")
			if strings.Trim(line, " |") == "" {
				continue
			}
			lines = append(lines, line)
		}
		pages[i+1] = fmt.Sprintf("[Sheet: %s]\n%s", sheet, strings.Join(lines, "\n"))
	}

	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, pages[n])
	}
	return strings.Join(parts, "\n\n"), pages, nil
}
