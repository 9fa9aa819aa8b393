package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/internal/core/huffman"
	"github.com/DODOEX/b64huff/internal/database/schema"
	"github.com/DODOEX/b64huff/internal/module/codec/repository"
	"github.com/DODOEX/b64huff/internal/module/store"
	"github.com/DODOEX/b64huff/utils"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/DODOEX/b64huff/utils/helpers"
	"github.com/allegro/bigcache"
	"github.com/google/uuid"
	"github.com/jackc/pgx/pgtype"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Publisher receives every finished job.
//
//go:generate mockgen -destination=publisher_mock.go -package=service . Publisher
type Publisher interface {
	Enabled() bool
	Publish(profile *common.JobProfile) error
}

type codecServiceConfig struct {
	MaxInputBytes int64
	Extension     string
	Reference     bool
	RecordJobs    bool
}

type codecService struct {
	logger    zerolog.Logger
	config    *codecServiceConfig
	store     store.Store
	publisher Publisher
	repo      repository.IJobRepository
	cache     *bigcache.BigCache
}

//go:generate mockgen -destination=codec_service_mock.go -package=service . CodecService
type CodecService interface {
	// EncodeFile encodes the object stored under name into name+extension.
	EncodeFile(ctx context.Context, name string) (*common.JobProfile, error)
	// DecodeFile restores the object an artifact was encoded from.
	DecodeFile(ctx context.Context, name string) (*common.JobProfile, error)
	Encode(ctx context.Context, data []byte) ([]byte, *common.JobProfile, error)
	Decode(ctx context.Context, artifact []byte) ([]byte, *common.JobProfile, error)
	Inspect(artifact []byte) (huffman.Header, error)
	// Job looks up a recorded job by the id handed out in X-Job-Id.
	Job(ctx context.Context, id string) (*schema.Job, error)
}

var ErrJobNotFound = errors.New("job not found")

func NewCodecService(
	logger zerolog.Logger,
	config *config.Conf,
	store store.Store,
	publisher Publisher,
	repo repository.IJobRepository,
) CodecService {
	logger = logger.With().Str("name", "codec_service").Logger()

	_config := &codecServiceConfig{
		MaxInputBytes: config.Int64("codec.max-input-bytes", 0),
		Extension:     config.String("codec.extension", ".hfm"),
		Reference:     config.Bool("codec.reference", false),
		RecordJobs:    config.Bool("database.enable", false),
	}

	service := &codecService{
		logger:    logger,
		config:    _config,
		store:     store,
		publisher: publisher,
		repo:      repo,
	}

	if config.Bool("cache.enable", false) {
		_cacheConfig := bigcache.Config{
			// number of shards (must be a power of 2)
			Shards: 16,

			// time after which entry can be evicted
			LifeWindow: config.Duration("cache.ttl", 10*time.Minute),

			// Interval between removing expired entries (clean up).
			CleanWindow: config.Duration("cache.ttl", 10*time.Minute),

			// max entry size in bytes, used only in initial memory allocation
			MaxEntrySize: 64 * 1024,

			// cache will not allocate more memory than this limit, value in MB
			HardMaxCacheSize: config.Int("cache.max-mb", 64),
		}
		config.Unmarshal("cache.bigcache", &_cacheConfig)

		cache, initErr := bigcache.NewBigCache(_cacheConfig)
		if initErr != nil {
			log.Fatal(initErr)
		}
		service.cache = cache

		logger.Info().Msgf("Cache size: %d MB", _cacheConfig.HardMaxCacheSize)
	}

	return service
}

func (s *codecService) newProfile(direction common.Direction, name, target string) *common.JobProfile {
	return &common.JobProfile{
		ID:        uuid.NewString(),
		Direction: direction,
		Name:      name,
		Target:    target,
		Starttime: time.Now().UnixMilli(),
	}
}

// guard rejects inputs above codec.max-input-bytes; 0 disables the limit.
func (s *codecService) guard(size int64) error {
	if s.config.MaxInputBytes > 0 && size > s.config.MaxInputBytes {
		return common.ResourceExhaustedError(
			helpers.Concat("input of ", byteCount(size), " exceeds the ", byteCount(s.config.MaxInputBytes), " limit"),
		)
	}
	return nil
}

// DecodeTarget strips the artifact extension, or appends ".out" when the
// name does not carry it.
func (s *codecService) DecodeTarget(name string) string {
	if ext := s.config.Extension; ext != "" && strings.HasSuffix(name, ext) && len(name) > len(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return helpers.Concat(name, ".out")
}

func (s *codecService) EncodeFile(ctx context.Context, name string) (*common.JobProfile, error) {
	p := s.newProfile(common.Encode, name, helpers.Concat(name, s.config.Extension))
	stats, err := s.encodeFile(ctx, p)
	s.finish(ctx, p, stats, err)
	return p, err
}

func (s *codecService) encodeFile(ctx context.Context, p *common.JobProfile) (*huffman.Stats, error) {
	src, err := s.store.Open(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := s.guard(src.Size()); err != nil {
		return nil, err
	}

	var stats huffman.Stats
	n, err := s.store.Save(ctx, p.Target, func(w io.Writer) (err error) {
		stats, err = huffman.Encode(w, src)
		return err
	})
	if err != nil {
		return nil, err
	}
	stats.ArtifactBytes = n

	if s.config.Reference {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to rewind source for the reference size")
		} else if size, err := helpers.CompressedSize(src); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to compute the reference size")
		} else {
			p.ReferenceBytes = size
		}
	}

	return &stats, nil
}

func (s *codecService) DecodeFile(ctx context.Context, name string) (*common.JobProfile, error) {
	p := s.newProfile(common.Decode, name, s.DecodeTarget(name))
	stats, err := s.decodeFile(ctx, p)
	s.finish(ctx, p, stats, err)
	return p, err
}

func (s *codecService) decodeFile(ctx context.Context, p *common.JobProfile) (*huffman.Stats, error) {
	src, err := s.store.Open(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := s.guard(src.Size()); err != nil {
		return nil, err
	}

	var stats huffman.Stats
	if _, err = s.store.Save(ctx, p.Target, func(w io.Writer) (err error) {
		stats, err = huffman.Decode(w, src)
		return err
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *codecService) Encode(ctx context.Context, data []byte) ([]byte, *common.JobProfile, error) {
	key := digest(data)
	p := s.newProfile(common.Encode, key, "")

	if err := s.guard(int64(len(data))); err != nil {
		s.finish(ctx, p, nil, err)
		return nil, p, err
	}

	if s.cache != nil {
		if artifact, err := s.cache.Get(key); err == nil {
			utils.TotalCaches.WithLabelValues("hit").Inc()
			p.Cached = true
			p.InputBytes = int64(len(data))
			p.OutputBytes = int64(len(artifact))
			if h, err := huffman.ReadHeader(bytes.NewReader(artifact)); err == nil {
				p.Padding = int(h.Padding)
			}
			s.finish(ctx, p, nil, nil)
			return artifact, p, nil
		}
		utils.TotalCaches.WithLabelValues("miss").Inc()
	}

	buf := &bytes.Buffer{}
	stats, err := huffman.Encode(buf, bytes.NewReader(data))
	if err != nil {
		s.finish(ctx, p, nil, err)
		return nil, p, err
	}

	if s.config.Reference {
		if size, err := helpers.CompressedSize(bytes.NewReader(data)); err == nil {
			p.ReferenceBytes = size
		}
	}

	artifact := buf.Bytes()
	if s.cache != nil {
		if err := s.cache.Set(key, artifact); err != nil {
			s.logger.Warn().Err(err).Msg("Cache set error")
		} else {
			utils.TotalCaches.WithLabelValues("set").Inc()
		}
	}

	s.finish(ctx, p, &stats, nil)
	return artifact, p, nil
}

func (s *codecService) Decode(ctx context.Context, artifact []byte) ([]byte, *common.JobProfile, error) {
	p := s.newProfile(common.Decode, digest(artifact), "")

	if err := s.guard(int64(len(artifact))); err != nil {
		s.finish(ctx, p, nil, err)
		return nil, p, err
	}

	buf := &bytes.Buffer{}
	stats, err := huffman.Decode(buf, bytes.NewReader(artifact))
	if err != nil {
		s.finish(ctx, p, nil, err)
		return nil, p, err
	}

	s.finish(ctx, p, &stats, nil)
	return buf.Bytes(), p, nil
}

func (s *codecService) Inspect(artifact []byte) (huffman.Header, error) {
	return huffman.ReadHeader(bytes.NewReader(artifact))
}

func (s *codecService) Job(ctx context.Context, id string) (*schema.Job, error) {
	job := &schema.Job{}
	if err := s.repo.GetJobByUUID(ctx, id, job); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// finish fills the profile from stats and err, then reports it.
func (s *codecService) finish(ctx context.Context, p *common.JobProfile, stats *huffman.Stats, err error) {
	p.Endtime = time.Now().UnixMilli()
	p.Status = common.Success

	if stats != nil {
		p.InputBytes = stats.InputBytes
		p.OutputBytes = stats.OutputBytes
		if p.Direction == common.Encode {
			p.OutputBytes = stats.ArtifactBytes
			for _, c := range stats.Codebook {
				utils.CodeLengths.Observe(float64(c.Len))
			}
		}
		p.Symbols = int64(stats.Symbols)
		p.Padding = int(stats.Padding)
	}

	logger := s.logger.With().Str("job", p.ID).Str("direction", string(p.Direction)).Logger()
	if err != nil {
		p.Status = common.Error
		if e, ok := common.AsCodecErrors(err); ok {
			p.Status = e.JobStatus()
			logger.Error().Str(zerolog.ErrorFieldName, e.String()).Msgf("%s failed", p.Name)
		} else {
			logger.Error().Stack().Err(err).Msgf("%s failed", p.Name)
		}
		p.Error = err.Error()
	} else {
		logger.Info().
			Int64("in", p.InputBytes).
			Int64("out", p.OutputBytes).
			Int("padding", p.Padding).
			TimeDiff("ms", time.UnixMilli(p.Endtime), time.UnixMilli(p.Starttime)).
			Msgf("%s -> %s", p.Name, p.Target)
	}

	utils.TotalJobs.WithLabelValues(string(p.Direction), string(p.Status)).Inc()
	utils.JobDurations.WithLabelValues(string(p.Direction)).Observe(float64(p.Endtime-p.Starttime) / 1000.0)
	utils.TotalBytes.WithLabelValues(string(p.Direction), "in").Add(float64(p.InputBytes))
	utils.TotalBytes.WithLabelValues(string(p.Direction), "out").Add(float64(p.OutputBytes))

	if s.publisher != nil && s.publisher.Enabled() {
		if err := s.publisher.Publish(p); err != nil {
			logger.Warn().Err(err).Msg("Failed to publish job")
		}
	}

	if s.repo != nil && s.config.RecordJobs {
		if err := s.repo.CreateJob(ctx, newJob(p, stats)); err != nil {
			logger.Warn().Err(err).Msg("Failed to record job")
		}
	}
}

func newJob(p *common.JobProfile, stats *huffman.Stats) *schema.Job {
	job := &schema.Job{
		UUID:           p.ID,
		Direction:      string(p.Direction),
		Name:           p.Name,
		Target:         p.Target,
		Status:         string(p.Status),
		Error:          p.Error,
		InputBytes:     p.InputBytes,
		OutputBytes:    p.OutputBytes,
		Symbols:        p.Symbols,
		Padding:        int16(p.Padding),
		ReferenceBytes: p.ReferenceBytes,
		DurationMs:     p.Endtime - p.Starttime,
	}

	codes := map[string]string{}
	if stats != nil {
		for s, c := range stats.Codebook {
			codes[huffman.Symbol(s).String()] = c.String()
		}
	}
	job.Codebook = &pgtype.JSONB{}
	if err := job.Codebook.Set(codes); err != nil {
		job.Codebook = nil
	}

	return job
}

func byteCount(n int64) string {
	return helpers.Concat(strconv.FormatInt(n, 10), " bytes")
}
