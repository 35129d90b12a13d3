package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lexdrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "lexdrill.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGroupsCRUD(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.CreateGroup(ctx, "Spanish")
	require.NoError(t, err)
	_, err = st.CreateGroup(ctx, "  German ")
	require.NoError(t, err)

	_, err = st.CreateGroup(ctx, "Spanish")
	assert.ErrorIs(t, err, ErrExists)
	_, err = st.CreateGroup(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidName)

	groups, err := st.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "German", groups[0].Name)
	assert.Equal(t, "Spanish", groups[1].Name)

	assert.ErrorIs(t, st.RenameGroup(ctx, "German", "Spanish"), ErrExists)
	assert.ErrorIs(t, st.RenameGroup(ctx, "German", "German"), ErrExists)
	assert.ErrorIs(t, st.RenameGroup(ctx, "French", "Italian"), ErrNotFound)
	require.NoError(t, st.RenameGroup(ctx, "German", "Deutsch"))

	_, err = st.GetGroup(ctx, "German")
	assert.ErrorIs(t, err, ErrNotFound)
	g, err := st.GetGroup(ctx, "Deutsch")
	require.NoError(t, err)
	assert.Equal(t, "Deutsch", g.Name)
}

func TestDeleteGroupCascades(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.CreateGroup(ctx, "Spanish")
	require.NoError(t, err)
	d, err := st.CreateDictionary(ctx, "Spanish", "Animals")
	require.NoError(t, err)
	_, err = st.AddWord(ctx, d.ID, "gato", "cat")
	require.NoError(t, err)

	require.NoError(t, st.DeleteGroup(ctx, "Spanish"))
	_, err = st.GetDictionary(ctx, "Spanish", "Animals")
	assert.ErrorIs(t, err, ErrNotFound)
	words, err := st.LoadWords(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.ErrorIs(t, st.DeleteGroup(ctx, "Spanish"), ErrNotFound)
}

func TestDictionariesCRUD(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.CreateDictionary(ctx, "Spanish", "Animals")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.CreateGroup(ctx, "Spanish")
	require.NoError(t, err)
	_, err = st.CreateGroup(ctx, "Italian")
	require.NoError(t, err)
	_, err = st.CreateDictionary(ctx, "Spanish", "Animals")
	require.NoError(t, err)
	_, err = st.CreateDictionary(ctx, "Spanish", "Food")
	require.NoError(t, err)
	_, err = st.CreateDictionary(ctx, "Italian", "Animals")
	require.NoError(t, err, "names are unique per group only")

	_, err = st.CreateDictionary(ctx, "Spanish", "Animals")
	assert.ErrorIs(t, err, ErrExists)
	_, err = st.CreateDictionary(ctx, "Spanish", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	dicts, err := st.ListDictionaries(ctx, "Spanish")
	require.NoError(t, err)
	require.Len(t, dicts, 2)
	assert.Equal(t, "Animals", dicts[0].Name)
	assert.Equal(t, "Spanish", dicts[0].Group)

	assert.ErrorIs(t, st.RenameDictionary(ctx, "Spanish", "Food", "Animals"), ErrExists)
	require.NoError(t, st.RenameDictionary(ctx, "Spanish", "Food", "Comida"))
	d, err := st.GetDictionary(ctx, "Spanish", "Comida")
	require.NoError(t, err)
	assert.Equal(t, "Comida", d.Name)

	require.NoError(t, st.DeleteDictionary(ctx, "Spanish", "Comida"))
	_, err = st.GetDictionary(ctx, "Spanish", "Comida")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.CreateGroup(ctx, "Spanish")
	require.NoError(t, err)
	d, err := st.CreateDictionary(ctx, "Spanish", "Animals")
	require.NoError(t, err)

	_, err = st.AddWord(ctx, d.ID, "gato", " ")
	assert.ErrorIs(t, err, ErrEmptyWord)
	_, err = st.AddWord(ctx, 999, "gato", "cat")
	assert.ErrorIs(t, err, ErrNotFound)

	cat, err := st.AddWord(ctx, d.ID, " gato ", "cat")
	require.NoError(t, err)
	assert.Equal(t, "gato", cat.Native)
	imported, err := st.ImportWords(ctx, d.ID, []model.WordPair{
		{Native: "perro", Foreign: "dog"},
		{Native: "pájaro", Foreign: "bird"},
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.NotZero(t, imported[1].ID)

	words, err := st.LoadWords(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, []string{"gato", "perro", "pájaro"}, []string{words[0].Native, words[1].Native, words[2].Native})
	assert.False(t, words[0].Learned)

	require.NoError(t, st.SetLearned(ctx, cat.ID, true))
	require.NoError(t, st.UpdateWord(ctx, imported[0].ID, "perro", "hound"))
	require.NoError(t, st.DeleteWord(ctx, imported[1].ID))
	assert.ErrorIs(t, st.DeleteWord(ctx, imported[1].ID), ErrNotFound)
	assert.ErrorIs(t, st.SetLearned(ctx, 12345, true), ErrNotFound)
	assert.ErrorIs(t, st.UpdateWord(ctx, cat.ID, "", "cat"), ErrEmptyWord)

	words, err = st.LoadWords(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.True(t, words[0].Learned)
	assert.Equal(t, "hound", words[1].Foreign)
}

func TestSessionHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	dict := model.Dictionary{ID: 1, Group: "Spanish", Name: "Animals"}
	cfg := model.SessionConfig{Direction: model.NativeToForeign, Mode: model.Sequential, Style: model.FullWord}
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Hour)
		id, err := st.InsertSession(ctx, model.SessionRecord{
			Dictionary: dict,
			Config:     cfg,
			StartedAt:  start,
			EndedAt:    start.Add(90 * time.Second),
			Correct:    1,
			Total:      2,
			Complete:   true,
		}, []model.TrainingResult{
			{Question: "gato", UserAnswer: "cat", CorrectAnswer: "cat", Correct: true},
			{Question: "perro", UserAnswer: "dgo", CorrectAnswer: "dog", Correct: false},
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}

	sessions, err := st.ListSessions(ctx, model.StatsConfig{Dictionary: "Animals"})
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, ids[0], sessions[0].SessionID)
	assert.Equal(t, 1, sessions[0].Correct)
	assert.Equal(t, 1, sessions[0].Incorrect)
	assert.Equal(t, 2, sessions[0].Total)
	assert.Equal(t, int64(90000), sessions[0].DurationMs)
	assert.Equal(t, model.Sequential, sessions[0].Mode)

	since := time.Unix(0, 0).UTC().Add(90 * time.Minute)
	sessions, err = st.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	sessions, err = st.ListSessions(ctx, model.StatsConfig{Group: "German"})
	require.NoError(t, err)
	assert.Empty(t, sessions)

	results, err := st.ListResults(ctx, ids[1])
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "dgo", results[1].UserAnswer)
	assert.False(t, results[1].Correct)

	aggs, err := st.ListWordAggregates(ctx, ids)
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	byWord := map[string]model.WordAggregate{}
	for _, a := range aggs {
		byWord[a.Word] = a
	}
	assert.Equal(t, 3, byWord["cat"].Correct)
	assert.Equal(t, 3, byWord["dog"].Incorrect)

	aggs, err = st.ListWordAggregates(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, aggs)
}
