package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/emotion-sdk/internal/domain"
	"github.com/samvad-hq/emotion-sdk/internal/logger"
	"github.com/samvad-hq/emotion-sdk/pkg/emotion"
	"github.com/samvad-hq/emotion-sdk/pkg/publishers"
)

const defaultConcurrency = 4

// Result is the outcome for one source. Err is set when recognition or
// publishing failed; Faces may still be populated in the latter case.
type Result struct {
	Source    domain.Source
	SourceID  string
	Faces     []emotion.Face
	Cached    bool
	Published int
	Err       error
}

// Service recognizes many sources on one shared client.
type Service struct {
	recognizer  Recognizer
	publisher   EventPublisher
	cache       Cache
	log         logger.Logger
	concurrency int
	readFile    func(string) ([]byte, error)
}

// NewService wires a batch runner. publisher and cache may be nil.
func NewService(rec Recognizer, pub EventPublisher, cache Cache, log logger.Logger, concurrency int) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		recognizer:  rec,
		publisher:   pub,
		cache:       cache,
		log:         log,
		concurrency: concurrency,
		readFile:    os.ReadFile,
	}
}

// Run processes sources with bounded concurrency. Results keep the input
// order; the returned error joins every per-source failure. One failing
// source does not stop the others.
func (s *Service) Run(ctx context.Context, sources []domain.Source) ([]Result, error) {
	if s == nil || s.recognizer == nil {
		return nil, errors.New("batch service is not initialized")
	}
	if len(sources) == 0 {
		return nil, errors.New("no sources to recognize")
	}

	results := make([]Result, len(sources))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = s.runSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}

func (s *Service) runSource(ctx context.Context, src domain.Source) Result {
	res := Result{Source: src}

	var image []byte
	if src.IsRemote() {
		res.SourceID = fingerprint("url", []byte(src.URL))
	} else {
		data, err := s.readFile(src.Path)
		if err != nil {
			res.Err = fmt.Errorf("read image %s: %w", src.Path, err)
			return res
		}
		image = data
		res.SourceID = fingerprint("file", data)
	}

	if faces, ok := s.lookup(res.SourceID); ok {
		res.Faces, res.Cached = faces, true
	} else {
		var err error
		if src.IsRemote() {
			res.Faces, err = s.recognizer.RecognizeURL(ctx, src.URL)
		} else {
			res.Faces, err = s.recognizer.RecognizeImage(ctx, bytes.NewReader(image))
		}
		if err != nil {
			res.Err = fmt.Errorf("recognize %s: %w", src, err)
			s.log.ErrorObj("recognition failed", "recognition_error", map[string]any{
				"source": src.String(),
				"error":  err.Error(),
			})
			return res
		}
		s.remember(res.SourceID, res.Faces)
	}

	s.log.InfoObj("source recognized", "recognition_result", map[string]any{
		"source":    src.String(),
		"source_id": res.SourceID,
		"faces":     len(res.Faces),
		"cached":    res.Cached,
	})

	if s.publisher != nil {
		n, err := s.publisher.Publish(ctx, publishers.NewEvent(res.SourceID, src.String(), res.Faces))
		res.Published = n
		if err != nil {
			res.Err = fmt.Errorf("publish %s: %w", src, err)
		}
	}
	return res
}

func (s *Service) lookup(key string) ([]emotion.Face, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Lookup(key)
	if err != nil {
		s.log.WarnObj("cache lookup failed", "cache_error", map[string]any{"key": key, "error": err.Error()})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var faces []emotion.Face
	if err := json.Unmarshal(raw, &faces); err != nil {
		s.log.WarnObj("cache entry unreadable", "cache_error", map[string]any{"key": key, "error": err.Error()})
		return nil, false
	}
	return faces, true
}

func (s *Service) remember(key string, faces []emotion.Face) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(faces)
	if err == nil {
		err = s.cache.Remember(key, raw)
	}
	if err != nil {
		s.log.WarnObj("cache write failed", "cache_error", map[string]any{"key": key, "error": err.Error()})
	}
}

// fingerprint hashes a source under a kind prefix so a URL and a file with
// identical bytes never collide.
func fingerprint(kind string, data []byte) string {
	d := xxhash.New()
	_, _ = d.WriteString(kind)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(data)
	return kind + "-" + strconv.FormatUint(d.Sum64(), 16)
}
