package internal

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"shelftune"
)

// Fallback values for files whose tags carry no artist or album.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// BuildPlaceholders resolves the closed placeholder token set for one file.
// Keys are the lowercase tokens including braces; matching in the pattern
// engine is case-insensitive. The replacements table is applied to raw tag
// values before sanitization, so user transliteration rules still work.
//
// Tokens without a metadata source yet (playlist_name, context_name,
// context_index, canvas_id) resolve to empty strings.
func BuildPlaceholders(rec shelftune.Record, sourcePath string, replacements map[string]string) map[string]string {
	clean := func(s string, mode Mode) string {
		return Sanitize(applyReplacements(s, replacements), mode)
	}

	var performers []string
	for _, p := range rec.Performers {
		if strings.TrimSpace(p) != "" {
			performers = append(performers, p)
		}
	}

	artist := UnknownArtist
	if len(performers) > 0 {
		if v := clean(performers[0], ModeFragment); v != "" {
			artist = v
		}
	}

	allArtists := artist
	if len(performers) > 1 {
		if v := clean(strings.Join(performers, ", "), ModeFragment); v != "" {
			allArtists = v
		}
	}

	album := UnknownAlbum
	if v := clean(rec.Album, ModeFragment); v != "" {
		album = v
	}

	title := clean(rec.Title, ModeSegment)
	if title == "" {
		stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		title = clean(stem, ModeSegment)
	}

	trackNum := "00"
	if rec.Track > 0 {
		trackNum = fmt.Sprintf("%02d", rec.Track)
	}

	var year string
	if rec.Year > 0 {
		year = strconv.Itoa(rec.Year)
	}

	var discPath, discParen string
	if rec.Disc > 1 {
		discPath = fmt.Sprintf("CD%d/", rec.Disc)
		discParen = fmt.Sprintf("CD%d", rec.Disc)
	}

	return map[string]string{
		"{track_name}":       title,
		"{artist_name}":      artist,
		"{all_artist_names}": allArtists,
		"{album_name}":       album,
		"{track_num}":        trackNum,
		"{release_year}":     year,
		"{release_date}":     year,
		"{multi_disc_path}":  discPath,
		"{multi_disc_paren}": discParen,
		"{playlist_name}":    "",
		"{context_name}":     "",
		"{context_index}":    "",
		"{canvas_id}":        "",
	}
}

// applyReplacements applies character replacements to a string
func applyReplacements(s string, replacementsTable map[string]string) string {
	result := s
	for k, v := range replacementsTable {
		result = strings.ReplaceAll(result, k, v)
	}
	return result
}
