package knowd_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistant-mcp/knowd"
	"github.com/assistant-mcp/knowd/application/service"
	"github.com/assistant-mcp/knowd/domain/knowledge"
	"github.com/assistant-mcp/knowd/domain/order"
)

// createTestKnowledgeBase writes a small knowledge base into a temp
// directory and returns its path.
func createTestKnowledgeBase(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "knowledge_base")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guides"), 0o755))

	setupGuide := `# Setup guide

Run the setup script before first use.
The setup requires python 3.11 or newer.
Then run make install.
`
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "guides", "setup-guide.md"), []byte(setupGuide), 0o644))

	meetingNotes := `Weekly sync notes.
Discussed the supplier onboarding checklist.
`
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "meeting-notes.txt"), []byte(meetingNotes), 0o644))

	return root
}

func newTestClient(t *testing.T, opts ...knowd.Option) *knowd.Client {
	t.Helper()

	base := []knowd.Option{
		knowd.WithDataDir(filepath.Join(t.TempDir(), "data")),
	}
	client, err := knowd.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIntegration_SearchKnowledgeBase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	t.Parallel()

	kbDir := createTestKnowledgeBase(t)
	client := newTestClient(t,
		knowd.WithKnowledgeDir(kbDir),
		knowd.WithSeedOrders(false),
	)

	ctx := context.Background()

	fileQuery, err := knowledge.NewFileQuery("setup", nil, 10, true, false)
	require.NoError(t, err)

	fileReport, err := client.Search.SearchFiles(ctx, kbDir, fileQuery)
	require.NoError(t, err)
	require.Len(t, fileReport.Hits(), 1)
	assert.Equal(t, "guides/setup-guide.md", filepath.ToSlash(fileReport.Hits()[0].File().RelPath()))
	assert.Equal(t, 2, fileReport.FilesScanned(), "both files should be scanned")

	contentQuery, err := knowledge.NewContentQuery("setup python", []string{"*"}, 2, false, 5)
	require.NoError(t, err)

	contentReport, err := client.Search.SearchContent(ctx, kbDir, contentQuery)
	require.NoError(t, err)
	require.Len(t, contentReport.Results(), 1)

	result := contentReport.Results()[0]
	assert.Equal(t, "guides/setup-guide.md", filepath.ToSlash(result.File().RelPath()))
	assert.NotEmpty(t, result.Matches())

	keywords := make(map[string]bool)
	for _, m := range result.Matches() {
		keywords[m.Keyword()] = true
	}
	assert.True(t, keywords["setup"], "expected a match for 'setup'")
	assert.True(t, keywords["python"], "expected a match for 'python'")
}

func TestIntegration_OrderWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	t.Parallel()

	fixed := time.Date(2024, 6, 15, 8, 30, 45, 0, time.UTC)
	client := newTestClient(t, knowd.WithClock(func() time.Time { return fixed }))

	ctx := context.Background()

	// The sample data seeds eight orders across three suppliers.
	all, err := client.Orders.Query(ctx, "", "all")
	require.NoError(t, err)
	assert.Len(t, all, 8)

	inProduction, err := client.Orders.Query(ctx, "SUP001", "in_production")
	require.NoError(t, err)
	require.Len(t, inProduction, 1)
	assert.Equal(t, "ORD001", inProduction[0].ID())

	outage, err := client.Orders.RandomOutageOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, order.StatusInProduction, outage.Order.Status())
	assert.NotEmpty(t, outage.Supplier.Name())

	transfer, err := client.Orders.Transfer(ctx, service.TransferParams{
		OrderID:       "ORD001",
		NewSupplierID: "SUP002",
		Quantity:      200,
		Reason:        "size outage at original supplier",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD001_TRANSFER_20240615083045", transfer.ID())
	assert.Equal(t, order.StatusPendingConfirmation, transfer.Status())
	assert.Equal(t, "SUP002", transfer.SupplierID())

	pending, err := client.Orders.Query(ctx, "SUP002", "pending_confirmation")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, transfer.ID(), pending[0].ID())

	material, err := client.Orders.ContactMaterial(ctx, service.MaterialParams{
		OrderID:      "ORD001",
		MaterialType: "fabric",
		Urgency:      "urgent",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(material.RequestID(), "MAT"))
	assert.True(t, material.CanExpedite())

	rec, err := client.Orders.RecordException(ctx, service.ExceptionParams{
		OrderID:         "ORD001",
		SupplierID:      "SUP001",
		ExceptionType:   "size_outage",
		ExceptionDetail: "sizes S and M unavailable",
		HandlerName:     "Lin Wei",
	})
	require.NoError(t, err)
	assert.Equal(t, "EXC20240615083045", rec.RecordID())
	assert.Equal(t, fixed, rec.RecordedAt())
}

func TestIntegration_OrdersPersistAcrossReopen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	t.Parallel()

	dataDir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	first, err := knowd.New(knowd.WithDataDir(dataDir))
	require.NoError(t, err)

	_, err = first.Orders.Transfer(ctx, service.TransferParams{
		OrderID:       "ORD003",
		NewSupplierID: "SUP001",
		Quantity:      500,
		Reason:        "capacity shortfall",
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening skips the seed because the store is populated, so the
	// transfer order is the only addition.
	second, err := knowd.New(knowd.WithDataDir(dataDir))
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	all, err := second.Orders.Query(ctx, "", "all")
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

func TestIntegration_CloseTwice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	t.Parallel()

	client, err := knowd.New(
		knowd.WithDataDir(filepath.Join(t.TempDir(), "data")),
		knowd.WithSeedOrders(false),
	)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), knowd.ErrClientClosed)
}
