package mapset

import (
	"testing"

	"gogeomap/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	table := mustTable(t, []string{"region", "type", "n"},
		[]string{"North", "shop", "1"},
		[]string{"South", "shop", "2"},
		[]string{"North", "shop", "3"},
		[]string{"North", "depot", "4"},
	)

	summary, err := Summarize(table, []string{"region", "type"}, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "type"}, summary.Columns)
	assert.Equal(t, [][]string{{"North", "shop"}, {"South", "shop"}}, summary.Rows)
	assert.Equal(t, 3, summary.Distinct)
}

func TestSummarizeErrors(t *testing.T) {
	table := mustTable(t, []string{"region"}, []string{"North"})

	_, err := Summarize(table, nil, 10)
	assert.ErrorIs(t, err, core.ErrNoSelection)

	_, err = Summarize(table, []string{"missing"}, 10)
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}
