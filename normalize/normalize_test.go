package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rpupo63/boardgame-journal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDateSerialNumbers(t *testing.T) {
	tokyo := LoadZone("Asia/Tokyo")

	assert.Equal(t, "1899-12-31", Date(1.0, tokyo))
	assert.Equal(t, "2021-01-01", Date(44197.0, tokyo))
	assert.Equal(t, "2021-01-01", Date(44197, tokyo))
	assert.Equal(t, "2021-01-01", Date(json.Number("44197"), tokyo))
	// 44197.75 is 18:00 UTC, already the next day in Tokyo
	assert.Equal(t, "2021-01-02", Date(44197.75, tokyo))
}

func TestDateStrings(t *testing.T) {
	tokyo := LoadZone("Asia/Tokyo")

	assert.Equal(t, "2024-05-01", Date("2024-05-01", tokyo))
	assert.Equal(t, "2024-05-01", Date("  2024-05-01 ", tokyo))
	assert.Equal(t, "2024-01-05", Date("2024/01/05", tokyo))
	assert.Equal(t, "2024-03-06", Date("2024-03-05T20:00:00Z", tokyo))
	assert.Equal(t, "someday soon", Date(" someday soon ", tokyo))
	assert.Equal(t, "", Date("   ", tokyo))
	assert.Equal(t, "", Date(nil, tokyo))
}

func TestDateIsIdempotentOnCanonicalInput(t *testing.T) {
	tokyo := LoadZone("")
	for _, in := range []string{"2024-01-01", "1999-12-31", "2030-06-15"} {
		once := Date(in, tokyo)
		assert.Equal(t, in, once)
		assert.Equal(t, once, Date(once, tokyo))
		assert.Equal(t, in, ContentDate(in))
		assert.Equal(t, in, ContentDate(ContentDate(in)))
	}
}

func TestDateTimeValue(t *testing.T) {
	instant := time.Date(2024, 2, 29, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", Date(instant, LoadZone("Asia/Tokyo")))
	assert.Equal(t, "2024-02-29", ContentDate(instant))
}

func TestContentDate(t *testing.T) {
	assert.Equal(t, MissingDate, ContentDate(nil))
	assert.Equal(t, MissingDate, ContentDate(""))
	assert.Equal(t, MissingDate, ContentDate(time.Time{}))
	assert.Equal(t, "2024-01-02", ContentDate("2024-01-02T23:30:00Z"))
	assert.Equal(t, "spring 2024", ContentDate(" spring 2024 "))
}

func TestLoadZoneFallsBack(t *testing.T) {
	loc := LoadZone("Not/AZone")
	require.NotNil(t, loc)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestTagsFromDelimitedString(t *testing.T) {
	assert.ElementsMatch(t, []string{"strategy", "euro", "worker-placement"}, Tags("strategy, #euro, worker-placement"))
	assert.ElementsMatch(t, []string{"協力", "推理", "短時間"}, Tags("協力、推理；短時間"))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, Tags("#a #b #c"))
	assert.ElementsMatch(t, []string{"x", "y"}, Tags("x|y\ny"))
	assert.Equal(t, []string{"solo"}, Tags(`"solo"`))
}

func TestTagsFromLists(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Tags([]any{"a", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, Tags([]string{"a", " a ", "b"}))
	assert.Equal(t, []string{"a", "b", "c"}, Tags([]any{"a", []any{"b", []any{"c"}}}))
	assert.Equal(t, []string{"2", "true"}, Tags([]any{2.0, true, nil}))
}

func TestTagsFromJSONShapedStrings(t *testing.T) {
	assert.ElementsMatch(t, []string{"x", "y"}, Tags(`["x","y"]`))
	assert.ElementsMatch(t, []string{"deck", "dice"}, Tags(`{"one":"deck","two":["dice"]}`))
	// not valid JSON, split by hand and stripped of brackets and quotes
	assert.ElementsMatch(t, []string{"x", "y"}, Tags(`['x', 'y']`))
}

func TestTagsFromMapsAndSets(t *testing.T) {
	assert.Equal(t, []string{"first", "second"}, Tags(map[string]any{"a": "first", "b": "second"}))
	assert.Equal(t, []string{"blue", "red"}, Tags(map[string]struct{}{"red": {}, "blue": {}}))
}

func TestTagsEmpty(t *testing.T) {
	assert.Nil(t, Tags(nil))
	assert.Nil(t, Tags(""))
	assert.Nil(t, Tags([]any{}))
	assert.Nil(t, Tags("#"))
}

func TestExtractTagsFallbackOrder(t *testing.T) {
	assert.Equal(t, []string{"a"}, ExtractTags(map[string]any{"tags": "a", "tag": "b"}))
	assert.Equal(t, []string{"b"}, ExtractTags(map[string]any{"tags": "", "tag": "b"}))
	assert.Equal(t, []string{"jp"}, ExtractTags(map[string]any{"タグ": "jp", "labels": "l"}))
	assert.Equal(t, []string{"l"}, ExtractTags(map[string]any{"tag": []any{}, "labels": "l"}))
}

func TestExtractTagsNumberedFields(t *testing.T) {
	record := map[string]any{
		"tag10": "ten",
		"tag2":  "two",
		"Tag_1": "one, two",
		"tagx":  "ignored",
	}
	assert.Equal(t, []string{"one", "two", "ten"}, ExtractTags(record))
	assert.Nil(t, ExtractTags(map[string]any{"id": "1"}))
}

func TestPlayers(t *testing.T) {
	raw := []any{
		map[string]any{"name": " Alice ", "score": "12", "win": "true"},
		map[string]any{"name": ""},
	}
	assert.Equal(t, []models.Player{{Name: "Alice", Score: ptr(12.0), Win: ptr(true)}}, Players(raw))
}

func TestPlayersMixedEntries(t *testing.T) {
	raw := []any{
		"  Bob ",
		"",
		map[string]any{"player": "Carol", "score": 7.5, "isWinner": false},
		map[string]any{"name": 42, "win": "maybe"},
		map[string]any{"name": "Dan", "score": "n/a", "win": "0"},
		3.0,
	}
	assert.Equal(t, []models.Player{
		{Name: "Bob"},
		{Name: "Carol", Score: ptr(7.5), Win: ptr(false)},
		{Name: "42"},
		{Name: "Dan", Win: ptr(false)},
	}, Players(raw))
}

func TestPlayersNonList(t *testing.T) {
	assert.Nil(t, Players(nil))
	assert.Nil(t, Players("Alice"))
	assert.Nil(t, Players(map[string]any{"name": "Alice"}))
	assert.Nil(t, Players([]any{map[string]any{"name": " "}}))
}

func TestScalarCoercion(t *testing.T) {
	assert.Equal(t, "123", Scalar(123.0))
	assert.Equal(t, "1.5", Scalar(1.5))
	assert.Equal(t, "7", Scalar(7))
	assert.Equal(t, "abc", Scalar(" abc "))
	assert.Equal(t, "", Scalar([]any{"a"}))
	assert.Equal(t, "", Scalar(nil))
}

func TestIntAndFloat(t *testing.T) {
	assert.Equal(t, ptr(4), Int(4))
	assert.Equal(t, ptr(4), Int(4.0))
	assert.Equal(t, ptr(4), Int(" 4 "))
	assert.Nil(t, Int(4.5))
	assert.Nil(t, Int("four"))
	assert.Equal(t, ptr(2.75), Float("2.75"))
	assert.Nil(t, Float(""))
	assert.Nil(t, Float(true))
}

func TestBool(t *testing.T) {
	assert.Equal(t, ptr(true), Bool("1"))
	assert.Equal(t, ptr(false), Bool(false))
	assert.Nil(t, Bool("TRUE"))
	assert.Nil(t, Bool(1.0))
}
