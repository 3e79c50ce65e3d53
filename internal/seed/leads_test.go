package seed

import (
	"context"
	"io"
	"testing"

	"fundpath/internal/leads"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLeadsIsRepeatable(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	backend := leads.NewMemoryBackend()
	client := leads.NewClient(backend, logger)

	first, err := SeedLeads(context.Background(), logger, client)
	require.NoError(t, err)
	assert.Len(t, first, len(DemoLeads()))

	second, err := SeedLeads(context.Background(), logger, client)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, backend.Leads(), len(DemoLeads()))
}
