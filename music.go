package shelftune

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Record is the tag data a file's destination is planned from.
type Record struct {
	Title      string
	Performers []string
	Album      string
	Year       int
	Track      int
	Disc       int
}

// ReadRecord extracts tag metadata from the file at path. The file handle is
// closed before returning, so the caller is free to move the file right away.
func ReadRecord(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Record{}, fmt.Errorf("no readable tags in %s: %w", filepath.Base(path), err)
	}

	return RecordFromTag(m), nil
}

// RecordFromTag flattens parsed tag metadata into a Record. Multi-valued
// artist frames are split on the ID3v2.4 NUL separator and on ";"; when the
// artist frame is empty the album artist stands in.
func RecordFromTag(m tag.Metadata) Record {
	rec := Record{
		Title: m.Title(),
		Album: m.Album(),
		Year:  m.Year(),
	}
	rec.Track, _ = m.Track()
	rec.Disc, _ = m.Disc()

	rec.Performers = splitPerformers(m.Artist())
	if len(rec.Performers) == 0 {
		rec.Performers = splitPerformers(m.AlbumArtist())
	}

	return rec
}

func splitPerformers(artist string) []string {
	var performers []string
	for _, p := range strings.FieldsFunc(artist, func(r rune) bool {
		return r == ';' || r == 0
	}) {
		if p = strings.TrimSpace(p); p != "" {
			performers = append(performers, p)
		}
	}
	return performers
}

// CollectFiles traverses a given directory recursively and returns every file
// whose extension matches ext (case-insensitive), in lexical walk order.
func CollectFiles(dir, ext string) ([]string, error) {
	var files []string
	if err := filepath.WalkDir(dir, func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(s), ext) {
			files = append(files, s)
		}
		return nil
	}); err != nil {
		return files, err
	}

	return files, nil
}
