// Command seedparts converts the parts-master Excel export into SQL seed
// files for the parts mirror. Reads the Parts sheet (master data) and the
// Interchange sheet (supersession table).
// Usage: go run ./cmd/seedparts <export.xlsx>
// Output: db/seeds/parts_master.sql, db/seeds/part_interchange.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type partEntry struct {
	partNumber  string
	brand       string
	title       string
	description string
	keywords    string
	isActive    bool
}

type interchangeEntry struct {
	code          string
	oldPartNumber string
	newPartNumber string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedparts <export.xlsx>")
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	parts, err := parsePartsSheet(f)
	if err != nil {
		return fmt.Errorf("parse Parts sheet: %w", err)
	}
	log.Printf("Parts sheet: %d entries", len(parts))

	interchange, err := parseInterchangeSheet(f)
	if err != nil {
		return fmt.Errorf("parse Interchange sheet: %w", err)
	}
	log.Printf("Interchange sheet: %d entries", len(interchange))

	if err := writePartsSeed("db/seeds/parts_master.sql", parts); err != nil {
		return err
	}
	if err := writeInterchangeSeed("db/seeds/part_interchange.sql", interchange); err != nil {
		return err
	}

	log.Printf("Generated %d parts and %d interchange rows", len(parts), len(interchange))
	return nil
}

// parsePartsSheet reads the Parts sheet (index 0).
// Columns: A=part number, B=brand, C=title, D=description, E=keywords,
// F=active flag ("Y"/"N"). Data starts at row index 1 (header row 0).
func parsePartsSheet(f *excelize.File) ([]partEntry, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []partEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		partNumber := strings.ToUpper(strings.TrimSpace(cellVal(row, 0)))
		if partNumber == "" || seen[partNumber] {
			continue
		}
		seen[partNumber] = true

		entries = append(entries, partEntry{
			partNumber:  partNumber,
			brand:       strings.TrimSpace(cellVal(row, 1)),
			title:       strings.TrimSpace(cellVal(row, 2)),
			description: strings.TrimSpace(cellVal(row, 3)),
			keywords:    strings.TrimSpace(cellVal(row, 4)),
			isActive:    !strings.EqualFold(strings.TrimSpace(cellVal(row, 5)), "N"),
		})
	}
	return entries, nil
}

// parseInterchangeSheet reads the Interchange sheet.
// Columns: A=interchange code, B=old part number, C=new part number.
// Data starts at row index 1.
func parseInterchangeSheet(f *excelize.File) ([]interchangeEntry, error) {
	rows, err := f.GetRows("Interchange")
	if err != nil {
		return nil, err
	}

	var entries []interchangeEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		oldNum := strings.ToUpper(strings.TrimSpace(cellVal(row, 1)))
		newNum := strings.ToUpper(strings.TrimSpace(cellVal(row, 2)))
		if oldNum == "" || newNum == "" {
			continue
		}
		entries = append(entries, interchangeEntry{
			code:          strings.TrimSpace(cellVal(row, 0)),
			oldPartNumber: oldNum,
			newPartNumber: newNum,
		})
	}
	return entries, nil
}

func writePartsSeed(path string, entries []partEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = out.Close() }()

	fmt.Fprintln(out, "-- Parts master seed data generated from the FileMaker export.")
	fmt.Fprintf(out, "-- %d entries in batches of %d.\n", len(entries), batchSize)
	fmt.Fprintln(out, "BEGIN;")

	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))
		fmt.Fprintln(out, "INSERT INTO parts_master (part_number, brand, title, description, keywords, is_active) VALUES")
		for j := i; j < end; j++ {
			e := entries[j]
			sep := ","
			if j == end-1 {
				sep = ""
			}
			fmt.Fprintf(out, "(%s, %s, %s, %s, %s, %t)%s\n",
				quote(e.partNumber), quote(e.brand), quote(e.title),
				quote(e.description), quote(e.keywords), e.isActive, sep)
		}
		fmt.Fprintln(out, "ON CONFLICT (part_number) DO UPDATE SET")
		fmt.Fprintln(out, "  brand = EXCLUDED.brand, title = EXCLUDED.title,")
		fmt.Fprintln(out, "  description = EXCLUDED.description, keywords = EXCLUDED.keywords,")
		fmt.Fprintln(out, "  is_active = EXCLUDED.is_active;")
	}

	fmt.Fprintln(out, "COMMIT;")
	return nil
}

func writeInterchangeSeed(path string, entries []interchangeEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = out.Close() }()

	fmt.Fprintln(out, "-- Interchange seed data generated from the FileMaker export.")
	fmt.Fprintf(out, "-- %d entries in batches of %d.\n", len(entries), batchSize)
	fmt.Fprintln(out, "BEGIN;")
	fmt.Fprintln(out, "TRUNCATE part_interchange;")

	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))
		fmt.Fprintln(out, "INSERT INTO part_interchange (interchange_code, old_part_number, new_part_number) VALUES")
		for j := i; j < end; j++ {
			e := entries[j]
			sep := ";"
			if j < end-1 {
				sep = ","
			}
			fmt.Fprintf(out, "(%s, %s, %s)%s\n",
				quote(e.code), quote(e.oldPartNumber), quote(e.newPartNumber), sep)
		}
	}

	fmt.Fprintln(out, "COMMIT;")
	return nil
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
