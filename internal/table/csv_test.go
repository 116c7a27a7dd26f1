package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTemp(t, "id,name,score\n1,ada,90\n2,,75\n3,grace,NA\n")

	tbl, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "score"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, V("ada"), tbl.Rows[0].Get("name"))
	assert.True(t, tbl.Rows[1].IsNull("name"), "empty cell reads as null")
	assert.True(t, tbl.Rows[2].IsNull("score"), "NA reads as null")
}

func TestReadCSVShortRecordPadded(t *testing.T) {
	path := writeTemp(t, "a,b,c\n1,2\n")

	tbl, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, V("2"), tbl.Rows[0].Get("b"))
	assert.True(t, tbl.Rows[0].IsNull("c"))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeTemp(t, "a,b\n")

	tbl, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.Equal(t, 0, tbl.Len())
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeTemp(t, "")
	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadCSVTrimsHeaderWhitespace(t *testing.T) {
	path := writeTemp(t, "id , name\n1,ada\n")

	tbl, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, tbl.Columns)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl := New("id", "name")
	tbl.Append(Row{"id": V("1"), "name": V("ada")})
	tbl.Append(Row{"id": V("2"), "name": Null()})

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(tbl, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,ada\n2,\n", strings.ReplaceAll(string(data), "\r\n", "\n"))

	back, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 2, back.Len())
	assert.True(t, back.Rows[1].IsNull("name"))
}
