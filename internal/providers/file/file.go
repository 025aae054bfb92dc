package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/providers"
	"mlb-scoreboard/internal/providers/statsapi"
	"mlb-scoreboard/internal/timeutil"
)

const providerName = "file"

// Provider replays recorded Stats API schedule responses from a directory.
// Schedules live at {dir}/{date}.json. Image URLs using the file scheme or a
// relative path resolve under dir; http(s) URLs go to the remote provider when set.
type Provider struct {
	dir    string
	remote providers.ImageProvider
	logger *slog.Logger
}

// New builds a replay provider rooted at dir. remote may be nil.
func New(dir string, remote providers.ImageProvider, logger *slog.Logger) *Provider {
	return &Provider{dir: dir, remote: remote, logger: logger}
}

// FetchSchedule reads and decodes the recorded response for date.
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("schedule date %q: %w", date, err))
	}

	path := filepath.Join(p.dir, date+".json")
	if p.logger != nil {
		p.logger.DebugContext(ctx, "reading schedule from file", logging.FieldProvider, providerName, "path", path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, providers.Wrap(providers.ErrResponse, err)
	}
	return statsapi.DecodeSchedule(body)
}

// FetchImage loads a recap image from disk, or defers to the remote provider for http(s) URLs.
func (p *Provider) FetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, err)
	}

	switch u.Scheme {
	case "http", "https":
		if p.remote == nil {
			return nil, providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("no remote image provider for %q", rawURL))
		}
		return p.remote.FetchImage(ctx, rawURL)
	case "file", "":
	default:
		return nil, providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("unsupported image url %q", rawURL))
	}

	path, err := p.resolve(u.Path)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &providers.StatusError{Provider: providerName, StatusCode: 404, Body: path}
		}
		return nil, providers.Wrap(providers.ErrResponse, err)
	}
	if len(body) == 0 {
		return nil, providers.Wrap(providers.ErrResponse, fmt.Errorf("empty image at %s", path))
	}
	return body, nil
}

// resolve keeps image paths inside the replay directory.
func (p *Provider) resolve(raw string) (string, error) {
	rel := strings.TrimPrefix(filepath.Clean("/"+raw), "/")
	if filepath.IsAbs(raw) {
		if r, err := filepath.Rel(p.dir, raw); err == nil && !escapesDir(r) {
			rel = r
		} else {
			return "", providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("image path %q outside %s", raw, p.dir))
		}
	}
	return filepath.Join(p.dir, rel), nil
}

func escapesDir(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
