package tsv

import "testing"

func TestParseHeaderAndRecords(t *testing.T) {
	text := "provider_id\tprovider_name\tnight_start\n" +
		"bolt\tBolt Drive\t22:00\n" +
		"carguru\tCarGuru\t23:00\n"

	table := Parse(text)
	if len(table.Header) != 3 {
		t.Fatalf("header = %v, want 3 columns", table.Header)
	}
	if len(table.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(table.Records))
	}
	if table.Records[0]["provider_name"] != "Bolt Drive" {
		t.Errorf("provider_name = %q", table.Records[0]["provider_name"])
	}
	if table.Records[1]["night_start"] != "23:00" {
		t.Errorf("night_start = %q", table.Records[1]["night_start"])
	}
}

func TestParseSkipsBlanksAndComments(t *testing.T) {
	text := "\n# providers export\n\nprovider_id\tprovider_name\n" +
		"   # indented comment\n" +
		"bolt\tBolt\n\n"

	table := Parse(text)
	if len(table.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(table.Records))
	}
}

func TestParseMissingTrailingFields(t *testing.T) {
	table := Parse("a\tb\tc\n1\t2\n")
	rec := table.Records[0]
	if rec["a"] != "1" || rec["b"] != "2" {
		t.Errorf("unexpected record: %v", rec)
	}
	if got, ok := rec["c"]; !ok || got != "" {
		t.Errorf("missing trailing field = %q (present=%v), want empty string", got, ok)
	}
}

func TestParseTrimsFieldsAndHeader(t *testing.T) {
	table := Parse(" a \t b \n x \t y \n")
	rec := table.Records[0]
	if rec["a"] != "x" || rec["b"] != "y" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestParseCRLFAndEmptyInput(t *testing.T) {
	table := Parse("a\tb\r\n1\t2\r\n")
	if len(table.Records) != 1 || table.Records[0]["b"] != "2" {
		t.Errorf("unexpected CRLF parse: %v", table.Records)
	}

	empty := Parse("  \n# only comments\n")
	if len(empty.Header) != 0 || len(empty.Records) != 0 {
		t.Errorf("expected empty table, got %v", empty)
	}
}
