package budget

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tp4-dataops/lib/testutil"

	"github.com/stretchr/testify/require"
)

const fixturePage = `<!DOCTYPE html>
<html>
<body>
<table class="p-datatable-table">
<thead>
<tr><th>Désignation</th><th>Prévisions</th><th>Réalisations</th><th></th></tr>
</thead>
<tbody class="p-datatable-tbody">
<tr class="ng-star-inserted"><td>Recettes fiscales</td><td>1 779 041,93</td><td>1 500 000,00</td></tr>
<tr class="ng-star-inserted"><td>Dons</td><td>250,00</td><td>100,50</td></tr>
</tbody>
</table>
</body>
</html>`

func TestScrape(t *testing.T) {
	if testing.Short() {
		t.Skip("needs chromium")
	}

	_, cleanup := testutil.Setup(t, "scrapers/budget")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, fixturePage)
	}))
	defer server.Close()

	grid, err := Scrape(context.Background(), Options{
		Url:     server.URL,
		Timeout: 30 * time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Désignation", "Prévisions", "Réalisations"}, grid.Headers, "blank header cells are filtered out")
	require.Equal(t, [][]string{
		{"Recettes fiscales", "1 779 041,93", "1 500 000,00"},
		{"Dons", "250,00", "100,50"},
	}, grid.Rows)
}

func TestScrapeTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("needs chromium")
	}

	_, cleanup := testutil.Setup(t, "scrapers/budget")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>loading...</p></body></html>")
	}))
	defer server.Close()

	_, err := Scrape(context.Background(), Options{
		Url:     server.URL,
		Timeout: 3 * time.Second,
	})
	require.Error(t, err, "a page that never renders the table must not hang forever")
}
