package checkfile_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/checkfile"
	"github.com/stretchr/testify/require"
)

func TestLoadCheckSetSplitsArchiveIntoFiles(t *testing.T) {
	archive := []byte(`
-- a.bolt --
let x = 1
-- b.bolt --
let y = 2
`)
	files := checkfile.LoadCheckSet(archive)
	require.Len(t, files, 2)
	require.Equal(t, "a.bolt", files[0].Path)
	require.Equal(t, "let x = 1\n", files[0].Text)
	require.Equal(t, "b.bolt", files[1].Path)
}
