package tabular

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromGrid(t *testing.T) {
	table := FromGrid([][]string{
		{"a", "  b  ", ""},
		{"1"},
	})

	require.Equal(t, []string{"col_1", "col_2", "col_3"}, table.Columns)
	require.Len(t, table.Rows, 2)
	require.Equal(t, TextCell("a"), table.Rows[0][0])
	require.Equal(t, TextCell("b"), table.Rows[0][1])
	require.True(t, table.Rows[0][2].IsMissing())
	require.True(t, table.Rows[1][1].IsMissing(), "short rows are padded")
}

func TestFromParts(t *testing.T) {
	table := FromParts(
		[]string{"Fonction ", "Déc. 2024", ""},
		[][]string{{"Transport", "104,2", "x"}},
	)
	require.Equal(t, []string{"fonction", "dec_2024", "col_3"}, table.Columns)
}

func TestPromoteHeader(t *testing.T) {
	cases := []struct {
		name    string
		grid    [][]string
		columns []string
		rows    int
	}{
		{
			name: "wordy first row becomes the header",
			grid: [][]string{
				{"Code", "Fonction", "Poids (%)"},
				{"01", "Produits alimentaires", "45.2"},
			},
			columns: []string{"code", "fonction", "poids"},
			rows:    1,
		},
		{
			name: "numeric first row stays data",
			grid: [][]string{
				{"01", "117.9", "120.1"},
				{"02", "104.5", "104.9"},
			},
			columns: []string{"col_1", "col_2", "col_3"},
			rows:    2,
		},
		{
			name: "single filled cell stays data",
			grid: [][]string{
				{"Ensemble", "", ""},
				{"01", "117.9", "120.1"},
			},
			columns: []string{"col_1", "col_2", "col_3"},
			rows:    2,
		},
		{
			name: "dated header keeps placeholders",
			grid: [][]string{
				{"Code", "Déc. 24", "Sept. 25", "Oct. 25"},
				{"01", "117.9", "120.1", "121.0"},
			},
			columns: []string{"col_1", "col_2", "col_3", "col_4"},
			rows:    2,
		},
		{
			name: "lone row never promotes",
			grid: [][]string{
				{"Code", "Fonction", "Poids"},
			},
			columns: []string{"col_1", "col_2", "col_3"},
			rows:    1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table := FromGrid(c.grid).PromoteHeader()
			require.Equal(t, c.columns, table.Columns)
			require.Len(t, table.Rows, c.rows)
		})
	}
}

func TestDropEmptyRows(t *testing.T) {
	table := FromGrid([][]string{
		{"a", "b"},
		{"", "  "},
		{"c", ""},
	}).DropEmptyRows()
	require.Len(t, table.Rows, 2)
}

func TestDropRepeatedHeaderRows(t *testing.T) {
	table := FromGrid([][]string{
		{"Code", "Fonction", "Poids"},
		{"01", "Produits alimentaires", "45.2"},
		{"Code", "Fonction", "Poids"},
		{"02", "Transports", "7.8"},
	}).PromoteHeader().DropRepeatedHeaderRows()

	require.Len(t, table.Rows, 2)
	require.Equal(t, TextCell("01"), table.Rows[0][0])
	require.Equal(t, TextCell("02"), table.Rows[1][0])
}

func TestCoerceNumeric(t *testing.T) {
	grid := [][]string{
		{"01", "117,9", "Ensemble"},
		{"02", "n/d", "Transports"},
		{"03", "121.4", "Sante"},
	}

	mostly := FromGrid(grid).CoerceNumeric(0.6)
	require.Equal(t, NumberCell(1), mostly.Rows[0][0])
	require.Equal(t, NumberCell(117.9), mostly.Rows[0][1])
	require.True(t, mostly.Rows[1][1].IsMissing(), "unparseable cell goes missing")
	require.Equal(t, TextCell("Transports"), mostly.Rows[1][2], "text column untouched")

	strict := FromGrid(grid).CoerceNumeric(1)
	require.Equal(t, TextCell("117,9"), strict.Rows[0][1], "one bad cell keeps the column text")
	require.Equal(t, NumberCell(3), strict.Rows[2][0])
}

func TestCoerceColumns(t *testing.T) {
	table := FromParts(
		[]string{"code", "poids"},
		[][]string{{"01", "45,2"}, {"xx", "n/d"}},
	).CoerceColumns("poids", "absent")

	require.Equal(t, NumberCell(45.2), table.Rows[0][1])
	require.True(t, table.Rows[1][1].IsMissing())
	require.Equal(t, TextCell("01"), table.Rows[0][0], "unnamed columns untouched")
}

func TestWithColumnAndSelect(t *testing.T) {
	table := FromParts(
		[]string{"code", "fonction"},
		[][]string{{"01", "Ensemble"}},
	).WithColumn("source_url", TextCell("https://example.test/doc.pdf"))

	table = table.SelectColumns([]string{"code", "source_url", "missing_col"})
	require.Equal(t, []string{"code", "source_url"}, table.Columns)
	require.Equal(t, TextCell("https://example.test/doc.pdf"), table.Rows[0][1])
}

func TestWriteCSVDeterminism(t *testing.T) {
	clean := func() Table {
		return FromGrid([][]string{
			{"Code", "Poids (%)"},
			{"01", "45,2"},
			{"", ""},
			{"02", "7,8"},
		}).DropEmptyRows().PromoteHeader().CoerceNumeric(0.6)
	}

	var first, second bytes.Buffer
	require.NoError(t, clean().WriteCSV(&first))
	require.NoError(t, clean().WriteCSV(&second))

	require.NotEmpty(t, first.Bytes())
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestReadCSVRoundTrip(t *testing.T) {
	table := FromGrid([][]string{
		{"Code", "Poids"},
		{"01", "45.2"},
		{"02", ""},
	}).PromoteHeader().CoerceColumns("poids")

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, []string{"code", "poids"}, back.Columns)
	require.Equal(t, NumberCell(45.2), back.Rows[0][1])
	require.True(t, back.Rows[1][1].IsMissing())
}

func TestProfile(t *testing.T) {
	table := FromParts(
		[]string{"code", "poids", "fonction"},
		[][]string{
			{"01", "45.2", "Produits"},
			{"02", "", "Transports"},
			{"03", "7.8", ""},
		},
	).CoerceColumns("poids")

	profiles := table.Profile()
	require.Len(t, profiles, 3)

	poids := profiles[1]
	want := ColumnProfile{
		Column:    "poids",
		Rows:      3,
		Missing:   1,
		NullRatio: 1.0 / 3.0,
		Numeric:   2,
		Min:       ptr(7.8),
		Max:       ptr(45.2),
	}
	if diff := cmp.Diff(want, poids); diff != "" {
		t.Fatal(diff)
	}

	for _, p := range profiles {
		require.GreaterOrEqual(t, p.NullRatio, 0.0)
		require.LessOrEqual(t, p.NullRatio, 1.0)
	}

	require.Equal(t, 2, table.MissingValues())
}

func TestProfileEmptyTable(t *testing.T) {
	profiles := Table{Columns: []string{"a"}}.Profile()
	require.Len(t, profiles, 1)
	require.Zero(t, profiles[0].NullRatio)
	require.Nil(t, profiles[0].Min)
}

func ptr(f float64) *float64 {
	return &f
}
