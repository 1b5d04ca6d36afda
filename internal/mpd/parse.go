package mpd

import (
	"fmt"
	"strconv"
	"strings"

	gompd "github.com/fhs/gompd/v2/mpd"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/shared"
)

// stopError carries an already-classified error out of a command closure so
// do does not re-wrap it as a connection failure.
type stopError struct{ err error }

func (e stopError) Error() string { return e.err.Error() }

func stopf(err error) error { return stopError{err: err} }

// statusFromAttrs builds a [models.PlaybackStatus] from the daemon's status
// response. The queue length field is mandatory; everything else degrades to
// a zero value.
func statusFromAttrs(attrs gompd.Attrs) (models.PlaybackStatus, error) {
	status := models.PlaybackStatus{
		State:     models.ParsePlayState(attrs["state"]),
		CurrentID: -1,
	}

	length, ok := attrs["playlistlength"]
	if !ok {
		return status, fmt.Errorf("%w: status missing playlistlength", shared.ErrProtocol)
	}
	n, err := strconv.Atoi(length)
	if err != nil {
		return status, fmt.Errorf("%w: bad playlistlength %q", shared.ErrProtocol, length)
	}
	status.QueueLength = n

	if id, ok := attrs["songid"]; ok {
		parsed, err := strconv.Atoi(id)
		if err != nil {
			return status, fmt.Errorf("%w: bad songid %q", shared.ErrProtocol, id)
		}
		status.CurrentID = parsed
	}

	if elapsed, ok := attrs["elapsed"]; ok {
		parsed, err := strconv.ParseFloat(elapsed, 64)
		if err != nil {
			return status, fmt.Errorf("%w: bad elapsed %q", shared.ErrProtocol, elapsed)
		}
		status.Elapsed = parsed
	}

	return status, nil
}

// trackFromAttrs builds a [models.Track] from one library entry. The file
// field is the identity; an entry without it is unusable.
func trackFromAttrs(attrs gompd.Attrs) (models.Track, error) {
	uri := attrs["file"]
	if uri == "" {
		return models.Track{}, fmt.Errorf("%w: entry missing file", shared.ErrProtocol)
	}

	return models.Track{
		URI:    uri,
		Title:  attrs["Title"],
		Artist: attrs["Artist"],
		Album:  attrs["Album"],
		Genres: splitGenres(attrs["Genre"]),
	}, nil
}

// splitGenres handles daemons that join multiple genre tags with a separator.
func splitGenres(raw string) []string {
	if raw == "" {
		return nil
	}

	var genres []string
	for _, g := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' }) {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// tracksFromAttrs converts a search result, skipping nothing: one malformed
// entry poisons the whole response.
func tracksFromAttrs(attrs []gompd.Attrs) ([]models.Track, error) {
	tracks := make([]models.Track, 0, len(attrs))
	for _, a := range attrs {
		track, err := trackFromAttrs(a)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// entriesFromAttrs converts a playlistinfo response into ordered queue
// entries. Pos and Id come from the daemon; the daemon owns ordering.
func entriesFromAttrs(attrs []gompd.Attrs) ([]models.QueueEntry, error) {
	entries := make([]models.QueueEntry, 0, len(attrs))

	for i, a := range attrs {
		track, err := trackFromAttrs(a)
		if err != nil {
			return nil, err
		}

		entry := models.QueueEntry{Track: track, Pos: i, ID: -1}

		if pos, ok := a["Pos"]; ok {
			parsed, err := strconv.Atoi(pos)
			if err != nil {
				return nil, fmt.Errorf("%w: bad Pos %q", shared.ErrProtocol, pos)
			}
			entry.Pos = parsed
		}

		if id, ok := a["Id"]; ok {
			parsed, err := strconv.Atoi(id)
			if err != nil {
				return nil, fmt.Errorf("%w: bad Id %q", shared.ErrProtocol, id)
			}
			entry.ID = parsed
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
