package loader

import (
	"strings"
	"testing"
)

func TestLoadCSV_BasicLoad(t *testing.T) {
	input := "product_id,product_name\n1,Widget Pro\n2,Gadget Max\n"
	products, stats, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[1] != "Widget Pro" || products[2] != "Gadget Max" {
		t.Fatalf("unexpected products: %v", products)
	}
	if stats.RowsRead != 2 || stats.Loaded != 2 || stats.Skipped != 0 || stats.Duplicates != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestLoadCSV_FirstOccurrenceWins(t *testing.T) {
	input := "1,First Name\n2,Other\n1,Second Name\n"
	products, stats, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products[1] != "First Name" {
		t.Fatalf("expected first occurrence to win, got %q", products[1])
	}
	if stats.Duplicates != 1 {
		t.Fatalf("expected 1 duplicate, got %d", stats.Duplicates)
	}
	if stats.Loaded != 2 {
		t.Fatalf("expected 2 loaded, got %d", stats.Loaded)
	}
}

func TestLoadCSV_SkipsInvalidRows(t *testing.T) {
	input := strings.Join([]string{
		"abc,Bad ID",
		"0,Zero ID",
		"-3,Negative ID",
		"4,   ",
		"5",
		"6,Good Name",
	}, "\n")
	products, stats, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[6] != "Good Name" {
		t.Fatalf("expected only the good row, got %v", products)
	}
	if stats.Skipped != 5 {
		t.Fatalf("expected 5 skipped, got %d", stats.Skipped)
	}
}

func TestLoadCSV_HeaderOptional(t *testing.T) {
	withHeader, _, err := LoadCSV(strings.NewReader("id,name\n1,Widget\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withoutHeader, _, err := LoadCSV(strings.NewReader("1,Widget\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withHeader) != 1 || len(withoutHeader) != 1 {
		t.Fatalf("expected 1 product either way, got %d and %d", len(withHeader), len(withoutHeader))
	}
}

func TestLoadCSV_NameWhitespaceTrimmed(t *testing.T) {
	products, _, err := LoadCSV(strings.NewReader("1,  Widget Pro  \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products[1] != "Widget Pro" {
		t.Fatalf("expected trimmed name, got %q", products[1])
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	products, stats, err := LoadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 || stats.RowsRead != 0 {
		t.Fatalf("expected empty result, got %v / %+v", products, stats)
	}
}
