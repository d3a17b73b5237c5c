package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Areas: []models.AssessmentArea{
		{ID: "a", Name: "Alpha", Weight: 50, Questions: []models.Question{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b", Name: "Beta", Weight: 50, Questions: []models.Question{{ID: "b1"}}},
	}}
}

func answerAll(t *testing.T, w *Wizard, v models.ResponseValue) {
	t.Helper()
	area, ok := w.Current()
	require.True(t, ok)
	for _, q := range area.Questions {
		require.NoError(t, w.Answer(q.ID, v))
	}
}

func TestNext_BlockedUntilAreaComplete(t *testing.T) {
	w := New(testCatalog())

	err := w.Next()
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, w.Index())

	require.NoError(t, w.Answer("a1", 3))
	err = w.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 questions")
	assert.Equal(t, 0, w.Index())
	assert.Equal(t, 50, w.AreaCompletion())

	require.NoError(t, w.Answer("a2", 0))
	require.NoError(t, w.Next())
	assert.Equal(t, 1, w.Index())
}

func TestNext_LastAreaCompletes(t *testing.T) {
	w := New(testCatalog())
	answerAll(t, w, 4)
	require.NoError(t, w.Next())
	answerAll(t, w, 4)
	require.NoError(t, w.Next())

	assert.True(t, w.IsComplete())
	_, ok := w.Current()
	assert.False(t, ok)
	assert.Equal(t, 100, w.OverallCompletion())

	err := w.Next()
	assert.True(t, apperr.IsValidation(err))
	assert.True(t, w.IsComplete())
}

func TestPrevious(t *testing.T) {
	w := New(testCatalog())

	err := w.Previous()
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, w.Index())

	answerAll(t, w, 5)
	require.NoError(t, w.Next())
	require.NoError(t, w.Previous())
	assert.Equal(t, 0, w.Index())

	require.NoError(t, w.Next())
	answerAll(t, w, 5)
	require.NoError(t, w.Next())
	require.True(t, w.IsComplete())

	require.NoError(t, w.Previous())
	assert.False(t, w.IsComplete())
	assert.Equal(t, 1, w.Index())
}

func TestAnswer_Validation(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		value      models.ResponseValue
		wantErr    string
	}{
		{name: "valid", questionID: "a1", value: 2},
		{name: "too high", questionID: "a1", value: 6, wantErr: "outside 0-5"},
		{name: "negative", questionID: "a1", value: -1, wantErr: "outside 0-5"},
		{name: "other area", questionID: "b1", value: 2, wantErr: "not part of area"},
		{name: "unknown", questionID: "zz", value: 2, wantErr: "not part of area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(testCatalog())
			err := w.Answer(tt.questionID, tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				v, ok := w.Responses().Get("a", tt.questionID)
				assert.True(t, ok)
				assert.Equal(t, tt.value, v)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, w.Responses())
		})
	}
}

func TestLoad_ReplacesResponses(t *testing.T) {
	w := New(testCatalog())
	require.NoError(t, w.Answer("a1", 1))

	r := models.NewResponseSet()
	r.Set("b", "b1", 5)
	w.Load(r)

	_, ok := w.Responses().Get("a", "a1")
	assert.False(t, ok)
	v, ok := w.Responses().Get("b", "b1")
	assert.True(t, ok)
	assert.Equal(t, models.ResponseValue(5), v)

	r.Set("b", "b1", 0)
	v, _ = w.Responses().Get("b", "b1")
	assert.Equal(t, models.ResponseValue(5), v, "wizard must hold its own copy")
}

func TestForEdit(t *testing.T) {
	r := models.NewResponseSet()
	r.Set("a", "a1", 3)
	r.Set("a", "a2", 3)
	r.Set("b", "b1", 3)

	w := ForEdit(testCatalog(), &models.AssessmentRecord{ID: "rec-1", Responses: r})
	assert.Equal(t, "rec-1", w.EditOf())
	assert.Equal(t, 0, w.Index())
	assert.Equal(t, 100, w.OverallCompletion())
	assert.Equal(t, "rec-1", w.Draft().AssessmentID)
}

func TestResume(t *testing.T) {
	c := testCatalog()

	t.Run("restores position", func(t *testing.T) {
		r := models.NewResponseSet()
		r.Set("a", "a1", 2)
		r.Set("a", "a2", 2)
		w := Resume(c, &models.Draft{Responses: r, CurrentArea: 1})
		assert.Equal(t, 1, w.Index())
	})

	t.Run("clamps to first incomplete area", func(t *testing.T) {
		r := models.NewResponseSet()
		r.Set("a", "a1", 2)
		w := Resume(c, &models.Draft{Responses: r, CurrentArea: 1})
		assert.Equal(t, 0, w.Index())
	})

	t.Run("clamps out of range index", func(t *testing.T) {
		r := models.NewResponseSet()
		r.Set("a", "a1", 2)
		r.Set("a", "a2", 2)
		r.Set("b", "b1", 2)
		w := Resume(c, &models.Draft{Responses: r, CurrentArea: 9})
		assert.Equal(t, 1, w.Index())
		assert.False(t, w.IsComplete())
	})

	t.Run("nil draft", func(t *testing.T) {
		w := Resume(c, nil)
		assert.Equal(t, 0, w.Index())
		assert.Empty(t, w.Responses())
	})
}

func TestDefaultCatalogWalkthrough(t *testing.T) {
	c := catalog.Default()
	w := New(c)
	for i := range c.Areas {
		assert.Equal(t, i, w.Index())
		answerAll(t, w, 3)
		require.NoError(t, w.Next())
	}
	assert.True(t, w.IsComplete())
	assert.Equal(t, len(c.Areas)-1, w.Draft().CurrentArea)
}
