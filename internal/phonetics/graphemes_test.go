package phonetics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

func TestDefaultGraphemeTable_CoversPhonemes(t *testing.T) {
	t.Parallel()

	table, err := DefaultTable()
	require.NoError(t, err)
	graphemes, err := DefaultGraphemeTable()
	require.NoError(t, err)

	assert.Empty(t, graphemes.Missing(table))
	assert.Contains(t, graphemes.Candidates("NG"), "NG")
	assert.Contains(t, graphemes.Candidates("F"), "PH")
	assert.Nil(t, graphemes.Candidates("QQ"))
}

func TestLoadGraphemeTable(t *testing.T) {
	t.Parallel()

	g, err := LoadGraphemeTable(strings.NewReader(`{"k": ["c", " ck "]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "CK"}, g.Candidates("K"))
}

func TestLoadGraphemeTable_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed json", input: `{"K": [`},
		{name: "empty object", input: `{}`},
		{name: "empty list", input: `{"K": []}`},
		{name: "empty grapheme", input: `{"K": ["C", ""]}`},
		{name: "wrong shape", input: `["K"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadGraphemeTable(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrReferenceData)
		})
	}
}
