package mpd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
	"golang.org/x/time/rate"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/shared"
)

// Commands per second allowed against the daemon connection.
const commandRate = 20

// Controller defines the daemon command surface consumed by the monitor and
// the web layer. All implementations must serialize commands internally.
type Controller interface {
	// Status returns a snapshot of the daemon's player state.
	Status(ctx context.Context) (models.PlaybackStatus, error)

	// Queue returns the current playback queue in daemon order.
	Queue(ctx context.Context) ([]models.QueueEntry, error)

	// SearchArtist finds library tracks with an exact artist tag match.
	SearchArtist(ctx context.Context, artist string) ([]models.Track, error)

	// SearchGenre finds library tracks with an exact genre tag match.
	SearchGenre(ctx context.Context, genre string) ([]models.Track, error)

	// Enqueue appends the given URIs to the queue in order and returns the
	// count actually added. Partial success is reported, never rolled back.
	Enqueue(ctx context.Context, uris []string) (int, error)

	// Play resumes (or starts) playback.
	Play(ctx context.Context) error

	// Pause pauses playback.
	Pause(ctx context.Context) error

	// Next skips to the next queue entry.
	Next(ctx context.Context) error

	// ClearQueue removes every entry from the queue.
	ClearQueue(ctx context.Context) error
}

// Client implements [Controller] over a single gompd connection.
type Client struct {
	addr     string
	password string
	timeout  time.Duration
	limiter  *rate.Limiter

	mu   sync.Mutex // serializes commands and guards conn
	conn *gompd.Client
}

var _ Controller = (*Client)(nil)

// NewClient creates a client for the daemon at addr. The connection is dialed
// lazily on the first command. timeout bounds each individual command.
func NewClient(addr, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		addr:     addr,
		password: password,
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Limit(commandRate), commandRate),
	}
}

// connect returns the live connection, dialing if necessary.
// Callers must hold c.mu.
func (c *Client) connect() (*gompd.Client, error) {
	if c.conn != nil {
		return c.conn, nil
	}

	var conn *gompd.Client
	var err error
	if c.password != "" {
		conn, err = gompd.DialAuthenticated("tcp", c.addr, c.password)
	} else {
		conn, err = gompd.Dial("tcp", c.addr)
	}
	if err != nil {
		return nil, err
	}

	c.conn = conn
	return conn, nil
}

// drop closes the connection so the next command redials.
// Callers must hold c.mu.
func (c *Client) drop() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// do runs one daemon command under the connection lock with a bounded
// deadline. On timeout the connection is dropped, which unblocks the
// in-flight command, and the call fails with [shared.ErrTimeout].
func (c *Client) do(ctx context.Context, op string, fn func(conn *gompd.Client) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrConnection, op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.connect()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrConnection, op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn(conn) }()

	select {
	case err := <-done:
		if err != nil {
			var se stopError
			if errors.As(err, &se) {
				// Already classified (protocol error); the transport is fine.
				return se.err
			}
			c.drop()
			return fmt.Errorf("%w: %s: %v", shared.ErrConnection, op, err)
		}
		return nil
	case <-ctx.Done():
		c.drop()
		<-done
		return fmt.Errorf("%w: %s", shared.ErrTimeout, op)
	}
}

// Close tears down the daemon connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Status implements [Controller].
func (c *Client) Status(ctx context.Context) (models.PlaybackStatus, error) {
	var status models.PlaybackStatus

	err := c.do(ctx, "status", func(conn *gompd.Client) error {
		attrs, err := conn.Status()
		if err != nil {
			return err
		}

		parsed, perr := statusFromAttrs(attrs)
		if perr != nil {
			return stopf(perr)
		}

		if parsed.State != models.StateStopped {
			song, err := conn.CurrentSong()
			if err != nil {
				return err
			}
			parsed.CurrentURI = song["file"]
		}

		status = parsed
		return nil
	})

	return status, err
}

// Queue implements [Controller].
func (c *Client) Queue(ctx context.Context) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry

	err := c.do(ctx, "playlistinfo", func(conn *gompd.Client) error {
		attrs, err := conn.PlaylistInfo(-1, -1)
		if err != nil {
			return err
		}

		parsed, perr := entriesFromAttrs(attrs)
		if perr != nil {
			return stopf(perr)
		}

		entries = parsed
		return nil
	})

	return entries, err
}

// SearchArtist implements [Controller].
func (c *Client) SearchArtist(ctx context.Context, artist string) ([]models.Track, error) {
	return c.find(ctx, "artist", artist)
}

// SearchGenre implements [Controller].
func (c *Client) SearchGenre(ctx context.Context, genre string) ([]models.Track, error) {
	return c.find(ctx, "genre", genre)
}

func (c *Client) find(ctx context.Context, tag, value string) ([]models.Track, error) {
	var tracks []models.Track

	err := c.do(ctx, "find "+tag, func(conn *gompd.Client) error {
		attrs, err := conn.Find(tag, value)
		if err != nil {
			return err
		}

		parsed, perr := tracksFromAttrs(attrs)
		if perr != nil {
			return stopf(perr)
		}

		tracks = parsed
		return nil
	})

	return tracks, err
}

// Enqueue implements [Controller]. URIs are added one at a time; the daemon
// has no atomic multi-add, so a failure partway leaves the earlier adds in
// place and the returned count reflects exactly what the daemon accepted.
func (c *Client) Enqueue(ctx context.Context, uris []string) (int, error) {
	added := 0

	err := c.do(ctx, "add", func(conn *gompd.Client) error {
		for _, uri := range uris {
			if err := conn.Add(uri); err != nil {
				return err
			}
			added++
		}
		return nil
	})

	return added, err
}

// Play implements [Controller].
func (c *Client) Play(ctx context.Context) error {
	return c.do(ctx, "play", func(conn *gompd.Client) error {
		return conn.Play(-1)
	})
}

// Pause implements [Controller].
func (c *Client) Pause(ctx context.Context) error {
	return c.do(ctx, "pause", func(conn *gompd.Client) error {
		return conn.Pause(true)
	})
}

// Next implements [Controller].
func (c *Client) Next(ctx context.Context) error {
	return c.do(ctx, "next", func(conn *gompd.Client) error {
		return conn.Next()
	})
}

// ClearQueue implements [Controller].
func (c *Client) ClearQueue(ctx context.Context) error {
	return c.do(ctx, "clear", func(conn *gompd.Client) error {
		return conn.Clear()
	})
}
