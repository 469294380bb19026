package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
)

func TestList(t *testing.T) {
	c := New()
	items := c.List()

	require.Len(t, items, 9)
	for i, v := range items {
		assert.Equal(t, i+1, v.ID, "порядок меню фіксований")
	}
}

func TestGet(t *testing.T) {
	c := New()

	vacancy, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Менеджер з продажу", vacancy.Name)
	assert.Equal(t, 35, vacancy.MaxAge)

	_, err = c.Get(100)
	assert.ErrorIs(t, err, domain.ErrVacancyNotFound)
}

func TestSuitableFor(t *testing.T) {
	c := New()

	assert.Len(t, c.SuitableFor(30), 9)
	assert.Len(t, c.SuitableFor(35), 9)
	assert.Empty(t, c.SuitableFor(36))
}
