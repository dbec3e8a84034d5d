package shelftune

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
)

func TestRecordFromTag(t *testing.T) {
	tests := []struct {
		name   string
		source mockTag
		want   Record
	}{
		{
			"all fields",
			mockTag{album: "Discovery", artist: "Daft Punk", track: 1, disc: 1, title: "One More Time", year: 2001},
			Record{Title: "One More Time", Performers: []string{"Daft Punk"}, Album: "Discovery", Year: 2001, Track: 1, Disc: 1},
		},
		{
			"multi-valued artist frame",
			mockTag{artist: "Carlos Santana; Rob Thomas", title: "Smooth"},
			Record{Title: "Smooth", Performers: []string{"Carlos Santana", "Rob Thomas"}},
		},
		{
			"nul-separated artist frame",
			mockTag{artist: "A\x00B", title: "x"},
			Record{Title: "x", Performers: []string{"A", "B"}},
		},
		{
			"album artist fallback",
			mockTag{albumArtist: "Various Artists", title: "x"},
			Record{Title: "x", Performers: []string{"Various Artists"}},
		},
		{
			"no performers at all",
			mockTag{title: "x"},
			Record{Title: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			must.Eq(t, tt.want, RecordFromTag(tt.source))
		})
	}
}

func TestReadRecord_Unreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notatag.mp3")
	must.NoError(t, os.WriteFile(path, []byte("not a music file"), 0644))

	_, err := ReadRecord(path)
	must.Error(t, err)
}

func TestReadRecord_MissingFile(t *testing.T) {
	_, err := ReadRecord(filepath.Join(t.TempDir(), "missing.mp3"))
	must.Error(t, err)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "album")
	must.NoError(t, os.Mkdir(sub, 0755))

	for _, name := range []string{"a.mp3", "b.MP3", "cover.jpg", "album/c.mp3", "album/notes.txt"} {
		must.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := CollectFiles(dir, ".mp3")
	must.NoError(t, err)
	must.Eq(t, []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "album", "c.mp3"),
		filepath.Join(dir, "b.MP3"),
	}, files)
}

func TestCollectFiles_MissingDir(t *testing.T) {
	_, err := CollectFiles(filepath.Join(t.TempDir(), "nope"), ".mp3")
	must.Error(t, err)
}
