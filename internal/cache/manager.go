package cache

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradedeadline/internal/debug"
)

// ErrBadStatus is returned when a download answers with a non-200 status
var ErrBadStatus = errors.New("unexpected HTTP status")

const userAgent = "Mozilla/5.0 (compatible; tradedeadline/1.0)"

// Manager handles downloading and caching map data and API responses
type Manager struct {
	cacheDir string
	client   *http.Client
	// Refresh ignores cached API responses and downloads them again
	Refresh bool
}

// DataFile represents a Natural Earth dataset to download
type DataFile struct {
	Name     string // Friendly name
	URL      string // Download URL
	Base     string // Base filename (without extension)
	Optional bool   // If true, failure to download won't stop the app
}

// Natural Earth datasets for the map backdrop
var NaturalEarthFiles = []DataFile{
	{
		Name:     "States/Provinces",
		URL:      "https://naciscdn.org/naturalearth/50m/cultural/ne_50m_admin_1_states_provinces.zip",
		Base:     "ne_50m_admin_1_states_provinces",
		Optional: true,
	},
	{
		Name:     "Coastlines",
		URL:      "https://naciscdn.org/naturalearth/50m/physical/ne_50m_coastline.zip",
		Base:     "ne_50m_coastline",
		Optional: true,
	},
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.tradedeadline/data
func NewManager(cacheDir string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".tradedeadline", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// EnsureData downloads any missing backdrop datasets.
// Optional files that fail to download are skipped with a warning.
func (m *Manager) EnsureData(ctx context.Context) error {
	for _, file := range NaturalEarthFiles {
		if err := m.ensureFile(ctx, file); err != nil {
			if file.Optional {
				fmt.Printf("Warning: Skipping %s (optional): %v\n", file.Name, err)
				continue
			}
			return fmt.Errorf("failed to ensure %s: %w", file.Name, err)
		}
	}

	return nil
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(ctx context.Context, file DataFile) error {
	if _, err := os.Stat(m.GetDataPath(file.Base)); err == nil {
		return nil
	}

	fmt.Printf("Downloading %s...\n", file.Name)

	resp, err := m.get(ctx, file.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := m.extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	fmt.Printf("Downloaded and extracted %s\n", file.Name)
	return nil
}

// Fetch returns the body at url, served from the cache file name.json when
// present. Successful downloads are written back to the cache.
func (m *Manager) Fetch(ctx context.Context, name, url string) ([]byte, error) {
	path := filepath.Join(m.cacheDir, name+".json")

	if !m.Refresh {
		if data, err := os.ReadFile(path); err == nil {
			debug.Log("Cache hit for %s", name)
			return data, nil
		}
	}

	resp, err := m.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		// A cache write failure still leaves us with the data
		debug.Warn("failed to cache response", "name", name, "err", err)
	}

	debug.Log("Fetched %s (%d bytes)", name, len(data))
	return data, nil
}

func (m *Manager) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s (URL: %s)", ErrBadStatus, resp.Status, url)
	}

	return resp, nil
}

func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// GetDataPath returns the shapefile path for a dataset base name
func (m *Manager) GetDataPath(base string) string {
	return filepath.Join(m.cacheDir, base+".shp")
}

// GetCacheDir returns the cache directory
func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}
