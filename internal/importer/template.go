package importer

import "strings"

// templateExamples are the sample rows shipped in the downloadable template.
// Every row must survive Parse with zero errors; the round trip is covered
// by tests.
var templateExamples = [][]string{
	{"Grilled Chicken Breast", "165", "31", "0", "3.6", "100g", "false", "120g", "100g", "lunch|dinner"},
	{"Brown Rice", "111", "2.6", "23", "0.9", "100g", "true", "40g", "100g", "lunch|dinner"},
	{"Scrambled Eggs", "148", "10", "1.6", "11", "2 eggs", "true", "110g", "100g", "breakfast"},
}

// Template returns the CSV import template: the fixed header line followed
// by example rows. The output is byte-stable because the download feature
// round-trips it through Parse in tests and coaches diff it against old
// copies.
func Template() string {
	var b strings.Builder
	b.WriteString(strings.Join(Headers, ","))
	b.WriteString("\n")
	for _, row := range templateExamples {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}
