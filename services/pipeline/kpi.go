package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"tp4-dataops/lib/tabular"

	"github.com/mazen160/go-random"
)

type DatasetKPI struct {
	Status        string                  `json:"status"`
	Rows          int                     `json:"rows"`
	MissingValues int                     `json:"missing_values"`
	Columns       []tabular.ColumnProfile `json:"columns"`
}

// Summary is the kpi.json document. field order is the serialization
// order, downstream dashboards key off it.
type Summary struct {
	ScrapedAt string     `json:"scraped_at"`
	RunId     string     `json:"run_id"`
	Budget    DatasetKPI `json:"budget"`
	Football  DatasetKPI `json:"football"`
	Inpc      DatasetKPI `json:"inpc"`
}

func datasetKPI(name string, t tabular.Table) (DatasetKPI, error) {
	if len(t.Rows) == 0 {
		return DatasetKPI{}, fmt.Errorf("%s dataset is empty", name)
	}
	return DatasetKPI{
		Status:        "OK",
		Rows:          len(t.Rows),
		MissingValues: t.MissingValues(),
		Columns:       t.Profile(),
	}, nil
}

func (s Service) summarize(footballT, budgetT, inpcT tabular.Table) (Summary, error) {
	runId, err := random.String(8)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		ScrapedAt: s.scrapedAt(),
		RunId:     runId,
	}
	if summary.Football, err = datasetKPI("football", footballT); err != nil {
		return Summary{}, err
	}
	if summary.Budget, err = datasetKPI("budget", budgetT); err != nil {
		return Summary{}, err
	}
	if summary.Inpc, err = datasetKPI("inpc", inpcT); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func writeKpiJson(path string, summary Summary) error {
	contents, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(contents, '\n'), 0644)
}
