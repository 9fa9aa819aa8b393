package shared

import (
	"context"
	"sync"

	"github.com/DODOEX/b64huff/utils/config"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v2"
)

type WatcherClient struct {
	logger      zerolog.Logger
	etcd        *clientv3.Client
	mu          sync.Mutex
	pathHandles map[string][]WatchHandler
}

func NewWatcherClientInstance(
	logger zerolog.Logger,
	etcd *clientv3.Client,
) *WatcherClient {
	return &WatcherClient{
		etcd:        etcd,
		logger:      logger.With().Str("name", "watcher").Logger(),
		pathHandles: make(map[string][]WatchHandler),
	}
}

type WatchHandler func(path string, value []byte)

// Enabled reports whether there is an etcd client to watch with.
func (w *WatcherClient) Enabled() bool {
	return w != nil && w.etcd != nil
}

func (w *WatcherClient) OnChanged(ctx context.Context, path string, fn WatchHandler) {
	if !w.Enabled() {
		return
	}

	w.mu.Lock()
	first := len(w.pathHandles[path]) == 0
	w.pathHandles[path] = append(w.pathHandles[path], fn)
	w.mu.Unlock()

	if first {
		go w.watch(ctx, path)
	}
}

func (w *WatcherClient) handlers(path string) []WatchHandler {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]WatchHandler(nil), w.pathHandles[path]...)
}

func (w *WatcherClient) watch(ctx context.Context, path string) {
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error().Interface("error", err).Msgf("Failed to watch etcd")
		}
	}()

	ch := w.etcd.Watch(ctx, path)

	for resp := range ch {
		for _, ev := range resp.Events {
			if ev.Type != clientv3.EventTypePut || ev.Kv.Value == nil {
				continue
			}
			for _, fn := range w.handlers(path) {
				fn(path, ev.Kv.Value)
			}
		}
	}
}

// ParseConfig reads a YAML document into a standalone config, leaving the
// running one untouched.
func ParseConfig(value []byte) (*config.Conf, error) {
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(value, &m); err != nil {
		return nil, err
	}
	maps.IntfaceKeysToStrings(m)

	conf := &config.Conf{Koanf: koanf.New(".")}
	if err := conf.Load(confmap.Provider(m, ""), nil); err != nil {
		return nil, err
	}
	return conf, nil
}
