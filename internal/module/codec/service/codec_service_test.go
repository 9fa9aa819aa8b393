package service

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/internal/database/schema"
	"github.com/DODOEX/b64huff/internal/module/codec/repository"
	"github.com/DODOEX/b64huff/internal/module/store"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	gomock "go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func newConfig(value map[string]any) *config.Conf {
	k := koanf.New(".")
	conf := &config.Conf{Koanf: k}
	if err := conf.Load(confmap.Provider(value, "."), nil); err != nil {
		log.Fatal(err)
	}
	return conf
}

type profileMatcher struct {
	status common.JobStatus
}

func (m profileMatcher) Matches(x any) bool {
	p, ok := x.(*common.JobProfile)
	return ok && p.Status == m.status && p.ID != ""
}

func (m profileMatcher) String() string {
	return "job profile with status " + string(m.status)
}

func createCodecService(t *testing.T, dir string, value map[string]any) (*MockPublisher, *repository.MockIJobRepository, CodecService) {
	ctrl := gomock.NewController(t)
	publisher := NewMockPublisher(ctrl)
	repo := repository.NewMockIJobRepository(ctrl)

	s := NewCodecService(
		zerolog.Nop(),
		newConfig(value),
		store.NewFileStore(dir),
		publisher,
		repo,
	)
	return publisher, repo, s
}

func TestEncodeDecodeFile(t *testing.T) {
	dir := t.TempDir()
	publisher, _, s := createCodecService(t, dir, map[string]any{})
	publisher.EXPECT().Enabled().Return(false).Times(2)

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Man"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	p, err := s.EncodeFile(ctx, "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if p.Target != "a.txt.hfm" {
		t.Errorf("expected %s, got %s", "a.txt.hfm", p.Target)
	}
	if p.Status != common.Success {
		t.Errorf("expected %s, got %s", common.Success, p.Status)
	}
	if p.InputBytes != 3 || p.Symbols != 4 {
		t.Errorf("expected 3 bytes and 4 symbols, got %d and %d", p.InputBytes, p.Symbols)
	}
	info, err := os.Stat(filepath.Join(dir, "a.txt.hfm"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != p.OutputBytes {
		t.Errorf("expected %d, got %d", info.Size(), p.OutputBytes)
	}

	os.Remove(filepath.Join(dir, "a.txt"))

	p, err = s.DecodeFile(ctx, "a.txt.hfm")
	if err != nil {
		t.Fatal(err)
	}
	if p.Target != "a.txt" {
		t.Errorf("expected %s, got %s", "a.txt", p.Target)
	}
	b, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(b) != "Man" {
		t.Errorf("expected %s, got %s", "Man", b)
	}
}

func TestDecodeFileWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	publisher, _, s := createCodecService(t, dir, map[string]any{"codec.extension": ".huf"})
	publisher.EXPECT().Enabled().Return(false).AnyTimes()

	os.WriteFile(filepath.Join(dir, "b"), []byte("hello"), 0o644)
	if _, err := s.EncodeFile(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}
	os.Rename(filepath.Join(dir, "b.huf"), filepath.Join(dir, "c"))

	p, err := s.DecodeFile(context.Background(), "c")
	if err != nil {
		t.Fatal(err)
	}
	if p.Target != "c.out" {
		t.Errorf("expected %s, got %s", "c.out", p.Target)
	}
}

func TestEncodeFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	publisher, _, s := createCodecService(t, dir, map[string]any{"codec.max-input-bytes": 2})
	publisher.EXPECT().Enabled().Return(false)

	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Man"), 0o644)

	p, err := s.EncodeFile(context.Background(), "a.txt")
	if !errors.Is(err, common.ErrResourceExhausted) {
		t.Errorf("expected ResourceExhausted, got %v", err)
	}
	if p.Status != common.Reject {
		t.Errorf("expected %s, got %s", common.Reject, p.Status)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt.hfm")); !os.IsNotExist(err) {
		t.Errorf("expected no artifact, got %v", err)
	}
}

func TestDecodeFileMalformed(t *testing.T) {
	dir := t.TempDir()
	publisher, _, s := createCodecService(t, dir, map[string]any{})
	publisher.EXPECT().Enabled().Return(false)

	os.WriteFile(filepath.Join(dir, "x.hfm"), []byte("not an artifact"), 0o644)

	_, err := s.DecodeFile(context.Background(), "x.hfm")
	if !errors.Is(err, common.ErrMalformedArtifact) {
		t.Errorf("expected MalformedArtifact, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the artifact, got %d entries", len(entries))
	}
}

func TestEncodeFileMissing(t *testing.T) {
	publisher, _, s := createCodecService(t, t.TempDir(), map[string]any{})
	publisher.EXPECT().Enabled().Return(false)

	p, err := s.EncodeFile(context.Background(), "missing")
	if !errors.Is(err, common.ErrIO) {
		t.Errorf("expected IOError, got %v", err)
	}
	if p.Status != common.Fail {
		t.Errorf("expected %s, got %s", common.Fail, p.Status)
	}
}

func TestPublishAndRecord(t *testing.T) {
	publisher, repo, s := createCodecService(t, t.TempDir(), map[string]any{
		"database.enable": true,
		"codec.reference": true,
	})

	publisher.EXPECT().Enabled().Return(true)
	publisher.EXPECT().Publish(profileMatcher{status: common.Success}).Return(nil)
	repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, job *schema.Job) error {
		if job.Direction != string(common.Encode) || job.Status != string(common.Success) {
			t.Errorf("expected a successful encode job, got %s %s", job.Direction, job.Status)
		}
		if job.Codebook == nil {
			t.Errorf("expected a codebook")
		}
		return nil
	})

	_, p, err := s.Encode(context.Background(), []byte("the quick brown fox"))
	if err != nil {
		t.Fatal(err)
	}
	if p.ReferenceBytes <= 0 {
		t.Errorf("expected a reference size, got %d", p.ReferenceBytes)
	}
}

func TestPublishFailureDoesNotFailJob(t *testing.T) {
	publisher, _, s := createCodecService(t, t.TempDir(), map[string]any{})
	publisher.EXPECT().Enabled().Return(true).Times(2)
	publisher.EXPECT().Publish(gomock.Any()).Return(errors.New("amqp is not connected")).Times(2)

	artifact, _, err := s.Encode(context.Background(), []byte("Man"))
	if err != nil {
		t.Fatal(err)
	}
	data, _, err := s.Decode(context.Background(), artifact)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Man" {
		t.Errorf("expected %s, got %s", "Man", data)
	}
}

func TestEncodeCache(t *testing.T) {
	publisher, _, s := createCodecService(t, t.TempDir(), map[string]any{"cache.enable": true})
	publisher.EXPECT().Enabled().Return(false).Times(2)

	a, p, err := s.Encode(context.Background(), []byte("Man"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Cached {
		t.Errorf("expected first encode to miss the cache")
	}

	b, p, err := s.Encode(context.Background(), []byte("Man"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Cached {
		t.Errorf("expected second encode to hit the cache")
	}
	if string(a) != string(b) {
		t.Errorf("expected identical artifacts")
	}
}

func TestEncodeCacheRespectsLimit(t *testing.T) {
	publisher, _, s := createCodecService(t, t.TempDir(), map[string]any{"cache.enable": true})
	publisher.EXPECT().Enabled().Return(false).Times(2)

	if _, _, err := s.Encode(context.Background(), []byte("Man")); err != nil {
		t.Fatal(err)
	}

	s.(*codecService).config.MaxInputBytes = 2
	if _, p, err := s.Encode(context.Background(), []byte("Man")); !errors.Is(err, common.ErrResourceExhausted) {
		t.Errorf("expected ResourceExhausted, got %v", err)
	} else if p.Cached {
		t.Errorf("expected the cached artifact to be skipped")
	}
}

func TestJob(t *testing.T) {
	_, repo, s := createCodecService(t, t.TempDir(), map[string]any{})
	repo.EXPECT().GetJobByUUID(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(func(ctx context.Context, uuid string, job *schema.Job) error {
		job.UUID = uuid
		job.Status = string(common.Success)
		return nil
	})
	repo.EXPECT().GetJobByUUID(gomock.Any(), "job-2", gomock.Any()).Return(gorm.ErrRecordNotFound)
	repo.EXPECT().GetJobByUUID(gomock.Any(), "job-3", gomock.Any()).Return(repository.ErrNotConnected)

	job, err := s.Job(context.Background(), "job-1")
	if err != nil {
		t.Fatal(err)
	}
	if job.UUID != "job-1" || job.Status != string(common.Success) {
		t.Errorf("expected job-1 %s, got %s %s", common.Success, job.UUID, job.Status)
	}
	if _, err := s.Job(context.Background(), "job-2"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := s.Job(context.Background(), "job-3"); !errors.Is(err, repository.ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestDecodeTooLarge(t *testing.T) {
	publisher, _, s := createCodecService(t, t.TempDir(), map[string]any{"codec.max-input-bytes": 10})
	publisher.EXPECT().Enabled().Return(false)

	if _, _, err := s.Decode(context.Background(), make([]byte, 700)); !errors.Is(err, common.ErrResourceExhausted) {
		t.Errorf("expected ResourceExhausted, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	publisher, _, s := createCodecService(t, t.TempDir(), map[string]any{})
	publisher.EXPECT().Enabled().Return(false)

	artifact, _, _ := s.Encode(context.Background(), []byte("Man"))
	h, err := s.Inspect(artifact)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Codebook.Validate(); err != nil {
		t.Errorf("expected a valid codebook, got %v", err)
	}
	if _, err := s.Inspect(artifact[:10]); !errors.Is(err, common.ErrMalformedArtifact) {
		t.Errorf("expected MalformedArtifact, got %v", err)
	}
}
