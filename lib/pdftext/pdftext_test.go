package pdftext

import (
	"os"
	"path/filepath"
	"testing"

	"tp4-dataops/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func run(x, y float64, text string) Run {
	return Run{Page: 1, X: x, Y: y, W: float64(len(text)) * 6, FontSize: 12, Text: text}
}

func TestClusterRows(t *testing.T) {
	runs := []Run{
		run(200, 700, "Poids"),
		run(72, 700.5, "Code"),
		run(72, 680, "01"),
		run(200, 680, "45.2"),
	}

	rows := clusterRows(runs, 4)
	require.Len(t, rows, 2)
	require.Equal(t, "Code", rows[0].runs[0].Text, "rows ordered top to bottom, runs left to right")
	require.Equal(t, "Poids", rows[0].runs[1].Text)
	require.Equal(t, "01", rows[1].runs[0].Text)
}

func TestGridsFromRuns(t *testing.T) {
	runs := []Run{
		run(72, 700, "Code"), run(200, 700, "Fonction"), run(340, 700, "Poids"),
		run(72, 680, "01"), run(200, 680, "Produits alimentaires"), run(340, 680, "45.2"),
		run(72, 660, "02"), run(200, 660, "Transports"), run(340, 660, "7.8"),
	}

	grids := GridsFromRuns(runs)
	require.Len(t, grids, 1)

	want := [][]string{
		{"Code", "Fonction", "Poids"},
		{"01", "Produits alimentaires", "45.2"},
		{"02", "Transports", "7.8"},
	}
	if diff := cmp.Diff(want, grids[0]); diff != "" {
		t.Fatal(diff)
	}
}

func TestGridsFromRunsSplitsOnVerticalGap(t *testing.T) {
	runs := []Run{
		// a title block far above the table
		run(72, 780, "Note mensuelle"),
		// the table itself
		run(72, 700, "Code"), run(200, 700, "Poids"),
		run(72, 680, "01"), run(200, 680, "45.2"),
		run(72, 660, "02"), run(200, 660, "7.8"),
	}

	grids := GridsFromRuns(runs)
	require.Len(t, grids, 2)
	require.Len(t, grids[1], 3)
	require.Equal(t, "Code", grids[1][0][0])
}

func TestGridsFromRunsSpanningCaption(t *testing.T) {
	// the caption stretches over both numeric columns but must not
	// merge them into one
	runs := []Run{
		run(200, 700, "Variations en pourcentage"),
		run(200, 680, "104.2"), run(340, 680, "0.4"),
		run(200, 660, "117.9"), run(340, 660, "1.1"),
	}

	grids := GridsFromRuns(runs)
	require.Len(t, grids, 1)
	require.Len(t, grids[0][1], 2)
	require.Equal(t, "104.2", grids[0][1][0])
	require.Equal(t, "0.4", grids[0][1][1])
}

func TestParsePages(t *testing.T) {
	cases := []struct {
		spec     string
		page     int
		contains bool
	}{
		{"all", 99, true},
		{"", 1, true},
		{"1", 1, true},
		{"1", 2, false},
		{"2-4", 3, true},
		{"2-4", 5, false},
		{"1,3-5", 4, true},
		{"1,3-5", 2, false},
	}
	for _, c := range cases {
		set, err := ParsePages(c.spec)
		require.NoError(t, err, c.spec)
		require.Equal(t, c.contains, set.Contains(c.page), "%q contains %d", c.spec, c.page)
	}

	_, err := ParsePages("4-2")
	require.Error(t, err)
	_, err = ParsePages("x")
	require.Error(t, err)
}

func TestExtractTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	doc := testutil.BuildPDF([][]string{
		{"Code", "Poids"},
		{"01", "45.2"},
		{"02", "7.8"},
	})
	require.NoError(t, os.WriteFile(path, doc, 0600))

	grids, err := ExtractTables(path, AllPages())
	if err != nil {
		t.Fatal(err)
	}
	require.NotEmpty(t, grids)

	want := [][]string{
		{"Code", "Poids"},
		{"01", "45.2"},
		{"02", "7.8"},
	}
	if diff := cmp.Diff(want, grids[0]); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractTablesBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0600))

	_, err := ExtractTables(path, AllPages())
	require.Error(t, err)
}

func TestExtractTablesPageOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	doc := testutil.BuildPDF([][]string{{"Code", "Poids"}})
	require.NoError(t, os.WriteFile(path, doc, 0600))

	pages, err := ParsePages("7")
	require.NoError(t, err)
	_, err = ExtractTables(path, pages)
	require.Error(t, err)
}
