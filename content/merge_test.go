package content

import (
	"testing"

	"github.com/rpupo63/boardgame-journal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePlaysRemoteOverwritesLocal(t *testing.T) {
	local := []models.Play{{ID: "1", Date: "2024-01-01", GameID: "go"}}
	remote := []models.Play{{ID: "1", Date: "2024-06-01", GameID: "chess"}}

	merged := MergePlays(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "2024-06-01", merged[0].Date)
	assert.Equal(t, "chess", merged[0].GameID)
}

func TestMergePlaysFiltersAndSorts(t *testing.T) {
	local := []models.Play{
		{ID: "a", Date: "2023-05-01"},
		{ID: "", Date: "2025-01-01"},
		{ID: "c", Date: ""},
	}
	remote := []models.Play{
		{ID: "b", Date: "2024-01-01"},
		{ID: "d", Date: "2023-05-01"},
	}

	merged := MergePlays(local, remote)
	ids := make([]string, 0, len(merged))
	for _, play := range merged {
		ids = append(ids, play.ID)
	}
	assert.Equal(t, []string{"b", "a", "d"}, ids)
}

func TestMergePlaysEmpty(t *testing.T) {
	merged := MergePlays(nil, nil)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}
