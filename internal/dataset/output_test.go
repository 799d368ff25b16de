package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/wikiedits/internal/store"
)

func TestTable(t *testing.T) {
	rows := []Row{
		{
			Candidate:   store.Candidate{Author: "alice", Language: "en", EditID: 1, Size: 6, Timestamp: "2020-01-10 10:00:00"},
			Classified:  true,
			Kind:        1,
			CurrentEdit: "...ate a <b>banana</b>",
			Scored:      true,
		},
		{
			Candidate:    store.Candidate{Author: "alice", Language: "de", EditID: 2, Size: 11},
			Classified:   true,
			Kind:         2,
			CurrentEdit:  "<b>eine Banane</b>",
			PreviousEdit: "<b>Banane</b>",
			Similarity:   0.25,
			Scored:       true,
		},
	}

	t.Run("Should lay out rows in column order", func(t *testing.T) {
		tbl, err := Table(rows, false)
		require.NoError(t, err)
		assert.Equal(t, Columns, tbl.Header)
		assert.Equal(t, "alice", tbl.Get(0, "Author"))
		assert.Equal(t, "1", tbl.Get(0, "Type"))
		assert.Equal(t, "0", tbl.Get(0, "Similarity"))
		assert.Equal(t, "0.25", tbl.Get(1, "Similarity"))
		assert.Equal(t, "2020-01-10 10:00:00", tbl.Get(0, "Timestamp"))
		assert.False(t, tbl.Has(ColTranslateCurrent))
	})

	t.Run("Should add translate formulas for non-English rows", func(t *testing.T) {
		tbl, err := Table(rows, true)
		require.NoError(t, err)
		assert.Empty(t, tbl.Get(0, ColTranslateCurrent))
		assert.Equal(t, `=GOOGLETRANSLATE(Q3, "de", "en")`, tbl.Get(1, ColTranslateCurrent))
		assert.Equal(t, `=GOOGLETRANSLATE(R3, "de", "en")`, tbl.Get(1, ColTranslatePrevious))
	})

	t.Run("Should leave unclassified cells empty", func(t *testing.T) {
		tbl, err := Table([]Row{{Candidate: store.Candidate{Author: "carol"}}}, false)
		require.NoError(t, err)
		assert.Empty(t, tbl.Get(0, "Type"))
		assert.Empty(t, tbl.Get(0, "Similarity"))
	})
}
