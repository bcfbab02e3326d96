package litematic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchematicExtentRollupEmpty(t *testing.T) {
	s := NewSchematic()
	assert.Equal(t, 0, s.Width())
	assert.Equal(t, 0, s.Height())
	assert.Equal(t, 0, s.Length())
}

func TestSchematicExtentRollupUnion(t *testing.T) {
	s := NewSchematic()
	r1, _ := NewRegion([3]int{0, 0, 0}, [3]int{5, 5, 5})
	r2, _ := NewRegion([3]int{10, 0, 0}, [3]int{5, 5, 5})
	require.NoError(t, s.PutRegion("a", r1))
	require.NoError(t, s.PutRegion("b", r2))

	assert.Equal(t, 15, s.Width())
	assert.Equal(t, 5, s.Height())
	assert.Equal(t, 5, s.Length())
}

func TestSchematicRejectsNilRegion(t *testing.T) {
	s := NewSchematic()
	err := s.PutRegion("a", nil)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, DiscriminationError, lerr.Kind())
}

func TestSchematicRemoveRegionUpdatesExtents(t *testing.T) {
	s := NewSchematic()
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{5, 5, 5})
	require.NoError(t, s.PutRegion("a", r))
	assert.Equal(t, 5, s.Width())

	_, ok := s.RemoveRegion("a")
	require.True(t, ok)
	assert.Equal(t, 0, s.Width())
}

func TestSchematicOptionsConfigureMetadata(t *testing.T) {
	s := NewSchematic(WithName("test"), WithAuthor("me"), WithFormatVersion(FormatV7))
	m := s.Metadata()
	assert.Equal(t, "test", m.Name)
	assert.Equal(t, "me", m.Author)
	assert.Equal(t, FormatV7, m.FormatVersion)
}

func TestSchematicTouchSaveSetsCreatedOnlyOnce(t *testing.T) {
	s := NewSchematic()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.TouchSave(first)
	assert.Equal(t, first, s.Metadata().TimeCreated)
	assert.Equal(t, first, s.Metadata().TimeModified)

	second := first.Add(time.Hour)
	s.TouchSave(second)
	assert.Equal(t, first, s.Metadata().TimeCreated)
	assert.Equal(t, second, s.Metadata().TimeModified)
}
