package shared

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/DODOEX/b64huff/utils/config"
	kYaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	clientv3 "go.etcd.io/etcd/client/v3"
)

var logger = log.New(os.Stderr, "conf ", log.Ldate|log.Ltime)

const EnvPrefix = "B64HUFF_"
const KoanfEtcdStaticConfigToken = "etcd.setup.config.file"

// ConfigFile is an extra YAML file named on the command line, loaded after
// the files under config/.
type ConfigFile string

func NewConfInstance(etcd *clientv3.Client, extra ConfigFile) *config.Conf {
	// 创建一个新的 koanf 实例
	k := koanf.New(".")
	conf := &config.Conf{Koanf: k}

	var source = "local"
	defer func() {
		if conf.Bool("logger.print-config", false) {
			logger.Printf(conf.Sprint())
		}
		logger.Printf("Load %s config!", source)
	}()

	// # 加载 —— 本机 默认配置
	if _, err := os.Stat("config/default.yaml"); err != nil {
		if !os.IsNotExist(err) {
			logger.Printf("Error read default config: %v", err)
		}
	} else if err := conf.Load(file.Provider("config/default.yaml"), kYaml.Parser()); err != nil {
		logger.Printf("Error loading default config: %v", err)
	}

	// # 加载 —— 本机 启动配置
	if _, err := os.Stat("config/local.yaml"); err != nil {
		if !os.IsNotExist(err) {
			logger.Printf("Error read local config: %v", err)
		}
	} else if err := conf.Load(file.Provider("config/local.yaml"), kYaml.Parser()); err != nil {
		logger.Printf("Error load local config: %v", err)
	}

	// # 加载 —— 命令行指定的配置文件
	if extra != "" {
		if err := conf.Load(file.Provider(string(extra)), kYaml.Parser()); err != nil {
			logger.Printf("Error load %s config: %v", extra, err)
		} else {
			source = string(extra)
		}
	}

	// # 加载 —— 本机 环境变量
	if err := conf.Load(env.ProviderWithValue(EnvPrefix, ".", func(s string, v string) (string, interface{}) {
		// B64HUFF_LOGGER_LEVEL -> logger.level
		key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)

		// If there is a space in the value, split the value into a slice by the space.
		if strings.Contains(v, " ") {
			return key, strings.Split(v, " ")
		}

		return key, v
	}), nil); err != nil {
		logger.Printf("Error load env: %v", err)
	}

	if etcd == nil {
		return conf
	}

	// # 加载 —— ETCD 启动配置
	if conf.Exists(KoanfEtcdStaticConfigToken) {
		if resp, err := etcd.Get(context.Background(), conf.String(KoanfEtcdStaticConfigToken)); err != nil {
			logger.Printf("Error read etcd config %v", err)
		} else if len(resp.Kvs) < 1 {
			logger.Printf("ETCD got empty value!")
		} else if err := conf.Load(rawbytes.Provider(resp.Kvs[0].Value), kYaml.Parser()); err != nil {
			logger.Printf("Error load etcd config: %v", err)
		} else {
			source = "etcd"
		}
	}

	return conf
}
