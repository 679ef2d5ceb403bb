package pipeline

import (
	"context"
	"io"
	"log"
	"testing"

	"tp4-dataops/lib/testutil"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMailReport(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}

	_, cleanup := testutil.Setup(t, "services/pipeline")
	defer cleanup()

	testcontainers.Logger = log.New(io.Discard, "", 0)

	smtpServer, err := testcontainers.GenericContainer(
		context.Background(),
		testcontainers.GenericContainerRequest{
			Started: true,
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "haravich/fake-smtp-server",
				ExposedPorts: []string{"1025:1025", "1080:1080"},
				WaitingFor:   wait.ForLog("smtp://0.0.0.0:1025"),
			},
		},
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, smtpServer.Terminate(context.Background()))
	}()

	cfg := Config{
		Smtp: SmtpConfig{
			Server:       "localhost",
			Port:         1025,
			EmailAddress: "pipeline@example.test",
			Password:     "unused",
			To:           []string{"ops@example.test"},
		},
	}
	service := NewService(cfg, Options{Now: fixedNow})

	summary := Summary{
		ScrapedAt: service.scrapedAt(),
		RunId:     "a1b2c3d4",
		Budget:    DatasetKPI{Status: "OK", Rows: 42},
		Football:  DatasetKPI{Status: "OK", Rows: 7},
		Inpc:      DatasetKPI{Status: "OK", Rows: 13},
	}
	require.NoError(t, service.mailReport(context.Background(), summary))

	res, err := resty.New().R().Get("http://127.0.0.1:1080/messages/1.plain")
	require.NoError(t, err)
	body := res.String()
	require.Contains(t, body, "- scraped_at: 2026-02-10T08:30:00Z")
	require.Contains(t, body, "- Football: OK (7 rows)")
	require.Contains(t, body, "- INPC: OK (13 rows)")
}
