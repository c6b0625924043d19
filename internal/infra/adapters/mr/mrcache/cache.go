package mrcache

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/mr"
)

const cacheVersion = 1

const defaultCacheLifetime = 3600

var _ mr.Port = &Adapter{}

type AdapterOptions struct {
	CacheLocation string // cache directory (default to the working directory)
	CacheLifetime int    // in seconds (default to 3600)
}

type Adapter struct {
	key             string
	upstreamAdapter mr.Port
	opts            AdapterOptions
}

func getWorkingDirectory() string {
	path, err := os.Getwd()
	if err != nil {
		slog.Warn("can't get the working directory => cache disabled", slog.String("err", err.Error()))
		return ""
	}
	return path
}

func fixCacheLocation(cacheLocation string) string {
	logger := slog.Default().With(slog.String("cacheLocation", cacheLocation))
	if cacheLocation == "" {
		return getWorkingDirectory()
	}
	info, err := os.Stat(cacheLocation)
	if err != nil {
		logger.Warn("bad cacheLocation => cache disabled", slog.String("err", err.Error()))
		return ""
	}
	if !info.IsDir() {
		logger.Warn("bad cacheLocation, not a directory => cache disabled")
		return ""
	}
	path, err := filepath.Abs(cacheLocation)
	if err != nil {
		logger.Warn("cacheLocation: can't find the absolute path => cache disabled", slog.String("err", err.Error()))
		return ""
	}
	return path
}

func fixCacheLifetime(cacheLifetime int) int {
	if cacheLifetime <= 0 {
		return defaultCacheLifetime
	}
	return cacheLifetime
}

// NewAdapter returns an adapter caching (on disk) the merge request returned by the
// upstream adapter. The key must identify the merge request (project, iid...).
func NewAdapter(key string, upstreamAdapter mr.Port, opts AdapterOptions) *Adapter {
	opts.CacheLocation = fixCacheLocation(opts.CacheLocation)
	opts.CacheLifetime = fixCacheLifetime(opts.CacheLifetime)
	return &Adapter{
		key:             key,
		upstreamAdapter: upstreamAdapter,
		opts:            opts,
	}
}

func (r *Adapter) getCacheFilePath() string {
	h := sha256.New()
	h.Write([]byte(fmt.Sprintf("%d-%s", cacheVersion, r.key)))
	return filepath.Join(r.opts.CacheLocation, fmt.Sprintf("%x.cache", h.Sum(nil)))
}

func (r *Adapter) read(logger *slog.Logger, cacheFilePath string) *mr.MergeRequest {
	info, err := os.Stat(cacheFilePath)
	if err != nil {
		return nil
	}
	if time.Since(info.ModTime()) > time.Duration(r.opts.CacheLifetime)*time.Second {
		logger.Debug("expired cache")
		if err := os.Remove(cacheFilePath); err != nil {
			logger.Warn("can't delete expired cache file", slog.String("err", err.Error()))
		}
		return nil
	}
	file, err := os.Open(cacheFilePath)
	if err != nil {
		logger.Warn("can't open the cache file => cache disabled", slog.String("err", err.Error()))
		return nil
	}
	defer file.Close()
	res := &mr.MergeRequest{}
	if err := gob.NewDecoder(file).Decode(res); err != nil {
		logger.Warn("can't decode the cache file => cache disabled", slog.String("err", err.Error()))
		return nil
	}
	return res
}

func (r *Adapter) write(logger *slog.Logger, cacheFilePath string, res *mr.MergeRequest) {
	file, err := os.Create(cacheFilePath)
	if err != nil {
		logger.Warn("can't create the cache file => cache disabled", slog.String("err", err.Error()))
		return
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(res); err != nil {
		logger.Warn("can't encode the content of the cache file => cache disabled", slog.String("err", err.Error()))
		return
	}
	logger.Debug("cache saved")
}

func (r *Adapter) GetMergeRequest() (*mr.MergeRequest, error) {
	if !r.IsEnabled() {
		return r.upstreamAdapter.GetMergeRequest()
	}
	cacheFilePath := r.getCacheFilePath()
	logger := slog.Default().With(slog.String("cacheFilePath", cacheFilePath))
	if res := r.read(logger, cacheFilePath); res != nil {
		logger.Debug("cache hit")
		return res, nil
	}
	logger.Debug("cache miss")
	res, err := r.upstreamAdapter.GetMergeRequest()
	if err != nil || res == nil {
		// absent merge requests are not cached
		return res, err
	}
	r.write(logger, cacheFilePath, res)
	return res, nil
}

func (r *Adapter) IsEnabled() bool {
	return r.opts.CacheLocation != ""
}
